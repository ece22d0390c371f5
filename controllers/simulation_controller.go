package controller

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"

	"leadforge/worker"
)

type SimulationController struct {
	Worker *worker.SimulationWorker
	Logger *log.Logger
}

func NewSimulationController(w *worker.SimulationWorker, logger *log.Logger) *SimulationController {
	return &SimulationController{Worker: w, Logger: logger}
}

// ForceTick advances the simulation one step immediately, outside the
// ticker cadence.
func (sc *SimulationController) ForceTick(c *fiber.Ctx) error {
	summary := sc.Worker.Tick()
	return c.JSON(fiber.Map{
		"tick": summary,
	})
}

// HandleSimulationWS streams tick summaries to the client until it
// disconnects. Only ticks that changed something are broadcast.
func (sc *SimulationController) HandleSimulationWS(c *websocket.Conn) {
	defer c.Close()

	ticks, cancel := sc.Worker.Subscribe()
	defer cancel()

	// Reads only serve to detect the peer closing.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := c.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case <-done:
			return
		case summary, ok := <-ticks:
			if !ok {
				return
			}
			if err := c.WriteJSON(summary); err != nil {
				sc.Logger.Printf("Error writing JSON: %v", err)
				return
			}
		}
	}
}
