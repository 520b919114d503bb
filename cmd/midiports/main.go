package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"time"

	"go-pianoroll/midi"
	"go-pianoroll/pianoroll"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		return
	}

	switch os.Args[1] {
	case "list":
		listPorts()
	case "poll":
		pollPorts()
	case "note":
		testNote(os.Args[2:])
	default:
		usage()
	}
}

func usage() {
	fmt.Println("MIDI port tool")
	fmt.Println("")
	fmt.Println("Commands:")
	fmt.Println("  list                 - List MIDI output ports")
	fmt.Println("  poll                 - Watch for ports coming and going")
	fmt.Println("  note [port] [key]    - Play a test note (default: first port, 60)")
}

func listPorts() {
	fmt.Println("=== MIDI Output Ports ===")
	fmt.Println("(waiting up to 3 seconds...)")

	ports := midi.NewPortManager().Scan()
	if len(ports) == 0 {
		fmt.Println("  (none - if CoreMIDI is hung: sudo killall coreaudiod midiserver)")
	}
	for i, name := range ports {
		fmt.Printf("  %d: %s\n", i, name)
	}
}

func pollPorts() {
	fmt.Println("Watching MIDI outputs. Ctrl+C to exit.")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	pm := midi.NewPortManager()
	go pm.Run(ctx)

	for ev := range pm.Events() {
		fmt.Printf("[%s] %s: %s\n", time.Now().Format("15:04:05"), ev.Type, ev.Name)
	}
}

func testNote(args []string) {
	name := ""
	if len(args) > 0 {
		name = args[0]
	}
	key := 60
	if len(args) > 1 {
		k, err := strconv.Atoi(args[1])
		if err != nil || k < 0 || k > pianoroll.MaxNoteNumber {
			fmt.Printf("Bad key %q\n", args[1])
			return
		}
		key = k
	}

	pm := midi.NewPortManager()
	pm.Scan()

	send, err := pm.Sender(name)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	length := 500 * time.Millisecond
	pv := midi.NewPreviewer(send, 0, length)
	fmt.Printf("Playing %d...\n", key)
	pv.Preview(pianoroll.Note{Duration: 1, NoteNumber: key, Velocity: pianoroll.DefaultVelocity})
	time.Sleep(length + 100*time.Millisecond)
	fmt.Println("Done!")
}
