// Client = event stream + transaction tracker + local history db +
// market operation service + data facade + price feed + http reporter.
// All components are configured via environment variables (strings!).

package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	logger "github.com/sirupsen/logrus"

	"github.com/meeray/market-go/historydb"
	"github.com/meeray/market-go/marketapi"
	"github.com/meeray/market-go/marketops"
	"github.com/meeray/market-go/prices"
	"github.com/meeray/market-go/refreshbus"
	"github.com/meeray/market-go/reporter"
	"github.com/meeray/market-go/steemauth"
	"github.com/meeray/market-go/streamsync"
	"github.com/meeray/market-go/toast"
	"github.com/meeray/market-go/txtracker"
)

// Default params for the client.
// More often we don't recommend users to tweak those.
// So we list them here.
const (
	// price feed poll interval
	pricePollInterval = 60 * time.Second
)

// Keep the configuration's fields as "text" as possible.
// Its easier to load it from env vars or a config file.
type MarketClientConfig struct {
	// event stream side
	StreamUrl string // websocket url of the sidechain event feed

	// signer side
	Signer steemauth.Signer // external signer, submits operations under the user's authority

	// data side
	ApiBaseUrl string // sidechain REST api base url
	DbFilePath string // local history db file path

	// Http side
	HttpIp   string // eg. 0.0.0.0
	HttpPort string // eg. 8080
}

// MarketClient holds the objects that consists of the market client.
type MarketClient struct {
	MyStream  *streamsync.Conn
	MyTracker *txtracker.Tracker
	MyToasts  *toast.Store
	MyBus     *refreshbus.Bus
	MyHistory *historydb.Store
	MyOps     *marketops.Service
	MyApi     *marketapi.Client
	MyPrices  *prices.Feed
}

// NewMarketClient creates a new market client.
// ctx is used for parental context to cancel the operation of the client.
// wg is used to wait for all the goroutines inside the client (tracker
// loop, price feed) to finish.
func NewMarketClient(mcc *MarketClientConfig, ctx context.Context, wg *sync.WaitGroup) (*MarketClient, error) {
	// 1) Open the local db and create the history store over it.
	sqldb, err := OpenDatabase(mcc.DbFilePath)
	if err != nil {
		return nil, err
	}
	myHistory, err := historydb.NewStore(sqldb, historydb.DefaultConfig())
	if err != nil {
		logger.Fatalf("failed to create history store: %v", err)
		return nil, err
	}

	// 2) Create the event stream connection.
	myStream := streamsync.NewConn(streamsync.DefaultConfig(mcc.StreamUrl))

	// 3) Toast store + refresh bus, consumed by the UI layer.
	myToasts := toast.NewStore(toast.DefaultConfig())
	myBus := refreshbus.New()

	// 4) Create the transaction tracker over stream, toasts and bus.
	myTracker := txtracker.NewTracker(txtracker.DefaultConfig(), mcc.Signer, myStream, myToasts, myBus)
	myTracker.SetHistory(myHistory)

	// On reconnect the stream re-subscribes every still-pending id.
	myStream.SetPendingSource(myTracker.PendingIds)

	// 5) Typed market operations over the tracker.
	myOps := marketops.NewService(myTracker, mcc.Signer)

	// 6) REST data facade + price feed.
	myApi := marketapi.NewClient(marketapi.DefaultConfig(mcc.ApiBaseUrl))

	priceCfg := prices.DefaultConfig()
	priceCfg.PollInterval = pricePollInterval
	myPrices := prices.NewFeed(priceCfg)

	// Important: turn on the loops!
	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := myTracker.Run(ctx); err != nil && ctx.Err() == nil {
			logger.Fatalf("tracker loop failed: %v", err)
		}
	}()
	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := myPrices.Run(ctx); err != nil && ctx.Err() == nil {
			logger.Fatalf("price feed failed: %v", err)
		}
	}()
	// Don't forget to call wg.Wait() in the main routine.

	// Bring the stream up. Failures here are retried by the reconnect
	// loop, so they only warrant a warning.
	if err := myStream.Connect(); err != nil {
		logger.Warnf("initial stream connect failed, will retry: %v", err)
	}

	// Close the stream and the db when the context ends.
	wg.Add(1)
	go func() {
		defer wg.Done()
		<-ctx.Done()
		myStream.Close()
		myHistory.Close()
		sqldb.Close()
	}()

	// *** Setup a http server to report status ***
	http_server := reporter.NewHttpReporter(
		mcc.HttpIp,
		mcc.HttpPort,
		myTracker,
		myHistory,
		myStream.Log(),
	)
	// Turn on the http server
	go http_server.Run()

	// Give it some time to start the http server
	time.Sleep(1 * time.Second)
	// *** End the setup of http server ***

	return &MarketClient{
		MyStream:  myStream,
		MyTracker: myTracker,
		MyToasts:  myToasts,
		MyBus:     myBus,
		MyHistory: myHistory,
		MyOps:     myOps,
		MyApi:     myApi,
		MyPrices:  myPrices,
	}, nil
}

// Create, then start the market client and wait.
// Press Ctrl-C to kill the client.
func StartMarketClientAndWait(mcc *MarketClientConfig) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Set up a signal channel to listen for Ctrl-C (SIGINT) or SIGTERM
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	// Launch a new goroutine to handle the signal
	go func() {
		sig := <-sigCh
		fmt.Printf("Received signal: %v, cancelling context...\n", sig)
		cancel()
	}()

	var wg sync.WaitGroup

	_, err := NewMarketClient(mcc, ctx, &wg)
	if err != nil {
		logger.Fatalf("failed to create market client: %v", err)
		return
	}

	// wait for all routines to finish
	wg.Wait()
}
