package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	pyroscope "github.com/grafana/pyroscope-go"
	"github.com/yanun0323/logs"
	"github.com/yanun0323/pkg/sys"

	"main/internal/account"
	"main/internal/broker"
	"main/internal/bus"
	"main/internal/engine"
	"main/internal/market"
	"main/internal/mdg"
	"main/internal/model"
	"main/internal/obs"
	"main/internal/ops"
	"main/internal/order"
	"main/internal/pricing"
	"main/internal/recorder"
	"main/internal/risk"
	"main/internal/store"
	"main/pkg/conn"
)

type feedOptions struct {
	record      string
	replay      string
	replaySpeed float64
}

func main() {
	configPath := flag.String("config", "", "Path to JSON config")
	runID := flag.String("run-id", "local", "Run identifier for persisted snapshots")
	ticks := flag.Int("ticks", 0, "Override the number of generated events (0=config)")
	seed := flag.Int64("seed", 0, "Override the generator seed (0=config)")
	pyroscopeAddr := flag.String("pyroscope", "", "Pyroscope server address (empty=disabled)")
	record := flag.String("record", "", "Journal generated events to this JSONL file")
	replay := flag.String("replay", "", "Replay events from a JSONL journal instead of generating")
	replaySpeed := flag.Float64("replay-speed", 0, "Replay pacing relative to recorded time (0=fastest)")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if *pyroscopeAddr != "" {
		profiler, err := pyroscope.Start(pyroscope.Config{
			ApplicationName: "backtest/sim",
			ServerAddress:   *pyroscopeAddr,
			ProfileTypes: []pyroscope.ProfileType{
				pyroscope.ProfileCPU,
				pyroscope.ProfileAllocSpace,
				pyroscope.ProfileInuseSpace,
			},
		})
		if err != nil {
			log.Fatalf("pyroscope start failed: %v", err)
		}
		defer func() { _ = profiler.Stop() }()
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if *ticks > 0 {
		cfg.Generator.Ticks = *ticks
	}
	if *seed != 0 {
		cfg.Generator.Seed = *seed
	}

	feed := feedOptions{
		record:      *record,
		replay:      *replay,
		replaySpeed: *replaySpeed,
	}
	if err := run(ctx, cfg, *runID, feed); err != nil {
		log.Fatalf("sim run failed: %v", err)
	}
}

func loadConfig(path string) (ops.Loaded, error) {
	if path == "" {
		return ops.Resolve(ops.FileConfig{})
	}
	return ops.Load(path)
}

func run(ctx context.Context, cfg ops.Loaded, runID string, feed feedOptions) error {
	var pricingEngine pricing.Engine
	if cfg.SpreadBps > 0 {
		pricingEngine = pricing.NewSpreadEngine(cfg.SpreadBps, cfg.PriceField)
	} else {
		pricingEngine = pricing.NewNoCostEngine()
	}

	acct := account.NewInternalAccount(cfg.BaseCurrency, cfg.Retention)
	acct.Deposit(cfg.BaseCurrency, cfg.InitialDeposit)
	acct.SetBuyingPower(cfg.InitialDeposit)

	riskCfg := cfg.Risk
	if !cfg.Features.EnableRiskChecks {
		riskCfg = risk.Config{}
	}

	var fees broker.FeeModel = broker.NoFee{}
	if cfg.FeeBps > 0 {
		fees = broker.PercentageFee{Bps: cfg.FeeBps}
	}

	b := broker.New(engine.New(pricingEngine), acct, risk.NewEngine(riskCfg), fees)

	metrics := &obs.Metrics{}

	var last *account.Account
	first := true
	handle := func(ev *market.Event) {
		if first {
			first = false
			placeDemoOrders(b, ev)
		}
		began := time.Now()
		before := 0
		if last != nil {
			before = len(last.Trades)
		}
		last = b.Sync(ev)
		metrics.ObserveSync(time.Since(began))
		metrics.AddEvent()
		if delta := len(last.Trades) - before; delta > 0 {
			metrics.AddExecutions(delta)
		}
	}

	if feed.replay != "" {
		playback, err := recorder.NewPlayback(feed.replay, feed.replaySpeed)
		if err != nil {
			return err
		}
		err = playback.Run(ctx, func(ev *market.Event) error {
			handle(ev)
			return nil
		})
		if err != nil && ctx.Err() == nil {
			return err
		}
	} else {
		generator, err := mdg.New(cfg.Generator)
		if err != nil {
			return err
		}

		var journal *recorder.Writer
		if feed.record != "" {
			journal, err = recorder.NewWriter(feed.record)
			if err != nil {
				return err
			}
			defer func() {
				if err := journal.Close(); err != nil {
					logs.Errorf("close journal, err: %v", err)
				}
			}()
		}

		queue := bus.NewQueue(256)
		go produce(ctx, generator, queue, journal, metrics, cfg.Generator.Ticks)
		queue.Run(ctx, handle)
	}

	report(metrics, last)

	if cfg.Features.EnablePersistence && last != nil {
		if err := persist(cfg.Store, runID, last); err != nil {
			return err
		}
	}
	return nil
}

func produce(ctx context.Context, generator *mdg.Generator, queue *bus.Queue, journal *recorder.Writer, metrics *obs.Metrics, ticks int) {
	defer queue.Close()
	now := time.Now().UTC().UnixNano()
	for i := 0; i < ticks; i++ {
		select {
		case <-ctx.Done():
			return
		case <-sys.Shutdown():
			return
		default:
		}
		ev := generator.Next(now)
		if journal != nil {
			if err := journal.Append(ev); err != nil {
				logs.Errorf("journal event, err: %v", err)
				journal = nil
			}
		}
		if err := queue.Publish(ctx, ev); err != nil {
			metrics.AddQueueDrop()
			return
		}
		now += generator.Interval()
	}
}

// placeDemoOrders seeds the run with one market buy per observed asset
// so a plain run produces fills without an external strategy layer.
func placeDemoOrders(b *broker.Broker, ev *market.Event) {
	id := uint64(1)
	orders := make([]order.Order, 0, ev.Len())
	for _, obs := range ev.Observations() {
		o, err := order.NewMarket(id, obs.Asset, model.Quantity(100_000_000), order.GTC())
		if err != nil {
			continue
		}
		orders = append(orders, o)
		id++
	}
	if err := b.PlaceOrders(ev.Time, orders...); err != nil {
		logs.Errorf("place demo orders, err: %v", err)
	}
}

func report(metrics *obs.Metrics, last *account.Account) {
	snap := metrics.Snapshot()
	logs.Infof("events=%d executions=%d drops=%d sync avg=%s max=%s",
		snap.Events, snap.Executions, snap.QueueDrops, snap.Sync.Avg, snap.Sync.Max)
	if last == nil {
		return
	}
	fmt.Printf("run complete: lastUpdate=%d cash[%s]=%s positions=%d trades=%d\n",
		last.LastUpdate,
		last.BaseCurrency,
		last.Cash[last.BaseCurrency],
		len(last.Positions),
		len(last.Trades),
	)
}

func persist(cfg ops.StoreConfig, runID string, last *account.Account) error {
	client, err := conn.New(conn.Option{
		Host:     cfg.Host,
		Port:     cfg.Port,
		User:     cfg.User,
		Password: cfg.Password,
		Database: cfg.Database,
	})
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	st, err := store.New(client)
	if err != nil {
		return err
	}
	if err := st.SaveSnapshot(runID, last); err != nil {
		return err
	}
	logs.Infof("snapshot persisted run=%s", runID)
	return nil
}
