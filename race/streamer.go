package race

import (
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/eclipse/paho.mqtt.golang"
)

// A FrameSource produces dense frames by index.
type FrameSource interface {
	FrameCount() int
	FrameAt(i int) *Frame
}

// Streamer publishes frames as JSON over MQTT to a bar-chart renderer.
type Streamer struct {
	client    mqtt.Client
	source    FrameSource
	topic     string
	frameRate float64
}

// NewStreamer creates an instance of a Streamer.
func NewStreamer(client mqtt.Client, source FrameSource, topic string, frameRate float64) *Streamer {
	s := new(Streamer)
	s.client = client
	s.source = source
	s.topic = topic
	s.frameRate = frameRate
	return s
}

// SendFrame publishes the frame at index i.
func (s *Streamer) SendFrame(i int) error {
	f := s.source.FrameAt(i)
	b, err := json.Marshal(f)
	if err != nil {
		return fmt.Errorf("marshal frame %d: %w", i, err)
	}

	token := s.client.Publish(s.topic, 2, false, b)
	token.Wait()
	return token.Error()
}

// Run publishes every frame in order at the configured frame rate.
func (s *Streamer) Run() error {
	interval := time.Duration(float64(time.Second) / s.frameRate)
	publishTimer := time.NewTicker(interval)
	defer publishTimer.Stop()

	total := s.source.FrameCount()
	for i := 0; i < total; i++ {
		<-publishTimer.C
		if err := s.SendFrame(i); err != nil {
			return err
		}
	}

	log.Printf("streamed %d frames", total)
	return nil
}
