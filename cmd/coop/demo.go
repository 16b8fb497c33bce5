package main

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"

	"github.com/embedlab/coop/kernel"
	"github.com/embedlab/coop/monitoring"
	"github.com/embedlab/coop/tracing"
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Run an instrumented blinky demo on the coop kernel.",
	Long: `The demo registers a periodic blink timer, a button event loop, ` +
		`and a polling task, then drives the scheduler for the requested ` +
		`number of ticks.`,
	Run: func(cmd *cobra.Command, args []string) {
		ticks, _ := cmd.Flags().GetInt("ticks")
		tracePath, _ := cmd.Flags().GetString("trace")
		monitorPort, _ := cmd.Flags().GetInt("monitor")

		runDemo(ticks, tracePath, monitorPort)
		atexit.Exit(0)
	},
}

func init() {
	rootCmd.AddCommand(demoCmd)
	demoCmd.Flags().Int("ticks", 1000, "Number of clock ticks to run")
	demoCmd.Flags().String("trace", "",
		"Write a CSV dispatch trace to this path")
	demoCmd.Flags().Int("monitor", 0,
		"Serve the monitoring API on this port")
}

type buttonEvent struct {
	Pressed bool
}

// blinker is the demo's polling task. It counts its own scheduling turns.
type blinker struct {
	ledOn bool
	turns int
}

func (b *blinker) Process() {
	b.turns++
}

func runDemo(ticks int, tracePath string, monitorPort int) {
	scheduler := kernel.NewScheduler()

	if tracePath != "" {
		writer := tracing.NewCSVTraceWriter(tracePath)
		writer.Init()
		tracing.CollectTraces(scheduler, writer)
	}

	led := &blinker{}
	kernel.NewGenericTask(scheduler, led, true)

	blinks := 0
	blinkTimer := scheduler.RegisterTimer(50, func() {
		led.ledOn = !led.ledOn
		blinks++
	})
	blinkTimer.Start()

	presses := 0
	buttons := kernel.NewEventLoop[buttonEvent](scheduler, 8)
	buttons.SetHandler(func(e buttonEvent) {
		if e.Pressed {
			presses++
		}
	})

	if monitorPort != 0 {
		monitor := monitoring.NewMonitor().WithPortNumber(monitorPort)
		monitor.RegisterScheduler(scheduler)
		monitor.RegisterBuffer("buttons", buttons)
		monitor.StartServer()
	}

	clock := scheduler.Clock()
	for i := 0; i < ticks; i++ {
		clock.Increment()

		// Simulate a button press every 100 ticks.
		if clock.Ticks()%100 == 0 {
			if !buttons.Push(buttonEvent{Pressed: true}) {
				log.Printf("button queue full at tick %d", clock.Ticks())
			}
		}

		scheduler.ProcessAll()
	}

	fmt.Printf("ran %d ticks: %d task turns, %d blinks, %d presses\n",
		ticks, led.turns, blinks, presses)
}
