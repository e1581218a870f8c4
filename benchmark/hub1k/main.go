package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"math"
	"math/rand"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/protobuf/types/known/structpb"
	hubGrpc "liyu1981.xyz/hub-alert-service/pkg/grpc"
)

var maxHubs int = 1000
var httpHostPort string = "127.0.0.1:1080"
var grpcHostPort string = "127.0.0.1:10801"

var grpcClient *hubGrpc.HubAlertServiceClient

var rnd *rand.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
var rndMu sync.Mutex

func main() {
	hubIDs := make([]string, maxHubs)
	for i := range maxHubs {
		hubIDs[i] = uuid.NewString()
	}
	fmt.Printf("generated %v hub IDs\n", maxHubs)

	resp, err := http.Get(fmt.Sprintf("http://%s/healthz", httpHostPort))
	if err != nil {
		log.Fatal("Failed to connect to HTTP server:", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		log.Fatal("HTTP server not available")
	}

	fmt.Printf("http server verified\n")

	conn, err := grpc.NewClient(grpcHostPort, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		log.Fatal("Failed to connect to gRPC server:", err)
	}
	defer conn.Close()
	grpcClient = hubGrpc.NewHubAlertServiceClient(conn)

	fmt.Printf("gRPC client created\n")

	var startTime time.Time
	var usedTime time.Duration

	startTime = time.Now()
	wg := sync.WaitGroup{}
	for i := range maxHubs {
		wg.Add(1)
		go func() {
			registerHub(hubIDs[i])
			fmt.Printf("\rregistered hub %v", i)
			wg.Done()
		}()
	}
	wg.Wait()
	usedTime = time.Since(startTime)

	fmt.Printf(
		"\rregistered %v hubs: used time=%v seconds, throughput=%v action/second\n",
		maxHubs, usedTime.Seconds(), float64(maxHubs)/usedTime.Seconds(),
	)

	startTime = time.Now()
	wg = sync.WaitGroup{}
	for i := range maxHubs {
		wg.Add(1)
		go func() {
			doAction(hubIDs[i])
			wg.Done()
		}()
	}
	wg.Wait()
	usedTime = time.Since(startTime)

	fmt.Printf(
		"\n\rdid actions for %v hubs: used time=%v seconds, throughput=%v action/second\n",
		maxHubs, usedTime.Seconds(), float64(maxHubs*3)/usedTime.Seconds(),
	)
}

func flipCoin() bool {
	rndMu.Lock()
	defer rndMu.Unlock()
	return rnd.Int31n(100000)%2 == 0
}

func rndFloat64(min, max float64, decimal int) float64 {
	rndMu.Lock()
	val := min + rnd.Float64()*(max-min)
	rndMu.Unlock()
	multiplier := math.Pow10(decimal)
	return math.Round(val*multiplier) / multiplier
}

func rndSleep() {
	rndMu.Lock()
	d := time.Duration(100+rnd.Int31n(1000)) * time.Millisecond
	rndMu.Unlock()
	time.Sleep(d)
}

func putJSON(url string, payload any) (*http.Response, error) {
	jsonData, _ := json.Marshal(payload)
	req, err := http.NewRequest(http.MethodPut, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	return http.DefaultClient.Do(req)
}

func registerHub(hubID string) {
	resp, err := putJSON(fmt.Sprintf("http://%s/hubs/%s", httpHostPort, hubID), map[string]string{
		"name":     "bench-" + hubID[:8],
		"owner_id": uuid.NewString(),
	})
	if err != nil {
		panic(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		panic(fmt.Sprintf("register hub %s: status %v", hubID, resp.StatusCode))
	}
}

func doAction(hubID string) {
	actions := []func(){
		genIngestAction(hubID),
		genGetAlertsAction(hubID),
		genIngestAction(hubID),
	}
	actionNames := []string{
		"Ingest",
		"GetAlerts",
		"Ingest",
	}
	rndMu.Lock()
	rnd.Shuffle(len(actions), func(i, j int) {
		actions[i], actions[j] = actions[j], actions[i]
		actionNames[i], actionNames[j] = actionNames[j], actionNames[i]
	})
	rndMu.Unlock()
	for index, action := range actions {
		action()
		fmt.Printf("\rexecuted action %v for hub %v", actionNames[index], hubID)
		rndSleep()
	}
}

func genIngestAction(hubID string) func() {
	return func() {
		useHttp := flipCoin()

		payload := map[string]any{
			"source_id":   hubID,
			"temperature": rndFloat64(15.0, 30.0, 2),
			"humidity":    rndFloat64(30.0, 80.0, 2),
			"recorded_at": time.Now().Format(time.RFC3339),
		}

		if useHttp {
			jsonData, _ := json.Marshal(payload)
			resp, err := http.Post(fmt.Sprintf("http://%s/ingest", httpHostPort), "application/json", bytes.NewBuffer(jsonData))
			if err != nil {
				fmt.Printf("\nerror: %v\n", err)
				return
			}
			defer resp.Body.Close()
			if resp.StatusCode != http.StatusOK {
				fmt.Printf("\nresponse status code != 200: %v\n", resp.StatusCode)
			}
		} else {
			req, err := structpb.NewStruct(payload)
			if err != nil {
				panic(err)
			}
			resp, err := grpcClient.Ingest(context.Background(), req)
			if err != nil {
				fmt.Printf("\nerror: %v\n", err)
				return
			}
			if !resp.GetFields()["success"].GetBoolValue() {
				fmt.Printf("\nresponse success = false: %v\n", resp)
			}
		}
	}
}

func genGetAlertsAction(hubID string) func() {
	return func() {
		useHttp := flipCoin()

		if useHttp {
			resp, err := http.Get(fmt.Sprintf("http://%s/hubs/%s/alerts", httpHostPort, hubID))
			if err != nil {
				fmt.Printf("\nerror: %v\n", err)
				return
			}
			defer resp.Body.Close()
			if resp.StatusCode != http.StatusOK {
				fmt.Printf("\nresponse status code != 200: %v\n", resp.StatusCode)
			}
		} else {
			req, _ := structpb.NewStruct(map[string]any{"hub_id": hubID})
			resp, err := grpcClient.GetAlerts(context.Background(), req)
			if err != nil {
				fmt.Printf("\nerror: %v\n", err)
				return
			}
			if !resp.GetFields()["success"].GetBoolValue() {
				fmt.Printf("\nresponse success = false: %v\n", resp)
			}
		}
	}
}
