package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/troupelabs/troupe/internal/actors"
	"github.com/troupelabs/troupe/internal/config"
	"github.com/troupelabs/troupe/internal/errors"
	"github.com/troupelabs/troupe/internal/event"
	"github.com/troupelabs/troupe/internal/host"
	"github.com/troupelabs/troupe/internal/logging"
)

var demoVerbose bool

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Run a small scripted messaging exchange",
	Long: `Run a reference embedding of the messaging runtime: two scripted
contexts register mailboxes, exchange tell and ask messages, and the
built-in scheduler drains them tick by tick.`,
	RunE: runDemo,
}

func init() {
	demoCmd.Flags().BoolVarP(&demoVerbose, "verbose", "v", false, "log runtime activity to stderr")
	rootCmd.AddCommand(demoCmd)
}

// demoTimeout bounds how long the demo waits for the exchange to finish.
const demoTimeout = 5 * time.Second

// demoContext is a stand-in for an embedded script context. Demo contexts
// share the Go heap, so Marshal is the identity copy.
type demoContext struct {
	name string
}

func (c *demoContext) Name() string      { return c.name }
func (c *demoContext) Marshal(v any) any { return v }

// demoLogger builds the runtime logger from the logging configuration.
// Without a configured log directory the demo stays quiet unless --verbose
// asks for stderr logging, keeping the printed exchange readable.
func demoLogger(cfg *config.Config) (*logging.Logger, error) {
	if !cfg.Logging.Enabled {
		return logging.NopLogger(), nil
	}

	level := cfg.Logging.Level
	if demoVerbose {
		level = logging.LevelDebug
	}

	if cfg.Logging.Dir != "" {
		return logging.NewRotatingLogger(cfg.Logging.Dir, level, logging.RotationConfig{
			MaxSizeMB:  cfg.Logging.MaxSizeMB,
			MaxBackups: cfg.Logging.MaxBackups,
		})
	}
	if demoVerbose {
		return logging.NewLogger("", level)
	}
	return logging.NopLogger(), nil
}

func runDemo(cmd *cobra.Command, args []string) error {
	cfg := config.Get()

	log, err := demoLogger(cfg)
	if err != nil {
		return errors.Wrap(err, "failed to open demo log")
	}
	defer func() { _ = log.Close() }()

	bus := event.NewBus()
	bus.SubscribeAll(func(e event.Event) {
		fmt.Printf("  [event] %s\n", e.EventType())
	})

	registry := actors.NewRegistry(
		actors.WithLogger(log),
		actors.WithBus(bus),
		actors.WithMessagesPerTick(cfg.Messaging.MessagesPerTick),
		actors.WithIDCeiling(cfg.Messaging.IDCeiling),
	)

	// The "oracle" context answers questions and counts greetings.
	oracle, err := registry.Register(&demoContext{name: "oracle"})
	if err != nil {
		return err
	}
	greetings := 0
	oracle.Bind("greet", func(payload any) any {
		greetings++
		return nil
	})
	oracle.Bind("question", func(payload any) any {
		return fmt.Sprintf("the answer to %q is 42", payload)
	})

	// The "seeker" context sends to the oracle by name.
	if _, err := registry.Register(&demoContext{name: "seeker"}); err != nil {
		return err
	}
	target, ok := registry.Lookup("Oracle") // name match is case-insensitive
	if !ok {
		return errors.NewNotFoundError("mailbox", "oracle")
	}

	fmt.Println("sending three greetings and one question")
	target.Tell("greet", "hello")
	target.Tell("greet", "hi")
	target.Tell("greet", "hey")
	resp := target.Ask("question", "life")
	fmt.Printf("response received before any tick: %v\n", resp.Received())

	scheduler := host.NewScheduler(registry,
		host.WithTickInterval(cfg.Host.TickInterval()),
		host.WithSchedulerLogger(log),
	)

	// Edits to the config file adjust the running demo: the tick interval
	// immediately, the default drain budget for mailboxes registered later.
	if viper.ConfigFileUsed() != "" {
		config.Watch(func(next *config.Config) {
			scheduler.SetInterval(next.Host.TickInterval())
			registry.SetDefaultMessagesPerTick(next.Messaging.MessagesPerTick)
			log.Info("configuration reloaded",
				"tick_interval", next.Host.TickInterval(),
				"messages_per_tick", next.Messaging.MessagesPerTick)
		})
	}

	cancel := scheduler.Start()
	defer cancel()

	deadline := time.Now().Add(demoTimeout)
	for !resp.Received() {
		if time.Now().After(deadline) {
			return errors.New("demo exchange timed out")
		}
		time.Sleep(cfg.Host.TickInterval())
	}

	fmt.Printf("greetings delivered: %d\n", greetings)
	fmt.Printf("response: %v\n", resp.Value())

	fmt.Println("registered mailboxes:")
	for name, ok := registry.Next(""); ok; name, ok = registry.Next(name) {
		fmt.Printf("  %s\n", name)
	}

	return nil
}
