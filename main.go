package main

import (
	"flag"
	"log"
	"os"
	"time"

	"github.com/eclipse/paho.mqtt.golang"
	"gopkg.in/yaml.v2"

	"github.com/matt-g-everett/barrace/race"
	"github.com/matt-g-everett/barrace/render"
)

type app struct {
	Config    *race.Config
	Client    mqtt.Client
	Sequencer *race.Sequencer
}

func newApp() *app {
	a := new(app)
	a.Config = race.NewConfig()
	return a
}

func (a *app) readConfig(configPath string) {
	f, err := os.Open(configPath)
	if err != nil {
		log.Fatal(err)
	}
	defer f.Close()

	decoder := yaml.NewDecoder(f)
	if err := decoder.Decode(a.Config); err != nil {
		log.Fatal(err)
	}
	if err := a.Config.Validate(); err != nil {
		log.Fatal(err)
	}
}

func (a *app) build(dataPath string) {
	f, err := os.Open(dataPath)
	if err != nil {
		log.Fatal(err)
	}
	defer f.Close()

	stream, err := race.ReadStream(f)
	if err != nil {
		log.Fatal(err)
	}

	// The stream header pins the window; buffer comes out of the spread
	// between tracked and displayed.
	a.Config.Animation.DisplayCount = stream.DisplayCount
	a.Config.Animation.Buffer = stream.TrackedCount - stream.DisplayCount

	builder := race.NewKeyframeBuilder(
		a.Config.Animation.DisplayCount,
		a.Config.Animation.Buffer,
		a.Config.Pool(stream.TrackedCount))
	keyframes, err := builder.Build(stream.Snapshots)
	if err != nil {
		log.Fatal(err)
	}

	a.Sequencer = race.NewSequencer(keyframes, a.Config.Animation.FramesPerInterval)
	log.Printf("built %d keyframes, %d frames", len(keyframes), a.Sequencer.FrameCount())
}

func (a *app) stream() {
	options := mqtt.NewClientOptions().
		AddBroker(a.Config.Mqtt.URL).
		SetClientID("barrace").
		SetUsername(a.Config.Mqtt.Username).
		SetPassword(a.Config.Mqtt.Password).
		SetKeepAlive(30 * time.Second).
		SetPingTimeout(5 * time.Second)
	a.Client = mqtt.NewClient(options)

	if token := a.Client.Connect(); token.Wait() && token.Error() != nil {
		log.Fatal(token.Error())
	}
	log.Println("Connected")

	streamer := race.NewStreamer(a.Client, a.Sequencer, a.Config.Mqtt.Topic, a.Config.Animation.FrameRate)
	if err := streamer.Run(); err != nil {
		log.Fatal(err)
	}
}

func main() {
	mqtt.ERROR = log.New(os.Stdout, "", 0)

	configPath := flag.String("config", "config.yaml", "YAML config file.")
	dataPath := flag.String("data", "snapshots.txt", "Snapshot stream file.")
	preview := flag.Bool("preview", false, "Print text bars instead of streaming.")
	every := flag.Int("every", 5, "With -preview, print every nth frame.")
	flag.Parse()

	a := newApp()
	a.readConfig(*configPath)
	log.Printf("Config: %+v", a.Config)

	a.build(*dataPath)

	if *preview {
		text := render.NewText(os.Stdout, a.Config.Animation.DisplayCount)
		text.Every(a.Sequencer, *every)
		return
	}

	a.stream()
}
