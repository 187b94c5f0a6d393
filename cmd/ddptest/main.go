package main

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"time"

	colorful "github.com/lucasb-eyer/go-colorful"

	"go-ledfield/pixel"
	"go-ledfield/sink"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		return
	}

	var err error
	switch os.Args[1] {
	case "solid":
		err = solid(os.Args[2:])
	case "sweep":
		err = sweep(os.Args[2:])
	case "listen":
		err = listen(os.Args[2:])
	case "layout":
		err = layout(os.Args[2:])
	default:
		usage()
	}

	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Println("DDP Test Scripts")
	fmt.Println("")
	fmt.Println("Commands:")
	fmt.Println("  solid  <addr> <pixels> <#rrggbb>  - Fill the fixture with one colour")
	fmt.Println("  sweep  <addr> <pixels>            - Rotate hue for 10 seconds")
	fmt.Println("  listen [port]                     - Print received DDP packets")
	fmt.Println("  layout <file>                     - Check a layout file")
}

func dial(args []string, want int) (*sink.DDP, int, error) {
	if len(args) < want {
		usage()
		return nil, 0, fmt.Errorf("missing arguments")
	}
	count, err := strconv.Atoi(args[1])
	if err != nil || count <= 0 {
		return nil, 0, fmt.Errorf("invalid pixel count %q", args[1])
	}
	d, err := sink.DialDDP(args[0])
	if err != nil {
		return nil, 0, err
	}
	return d, count, nil
}

func fill(frame []byte, c colorful.Color) {
	r, g, b := c.Clamped().RGB255()
	for i := 0; i+2 < len(frame); i += 3 {
		frame[i], frame[i+1], frame[i+2] = r, g, b
	}
}

func solid(args []string) error {
	d, count, err := dial(args, 3)
	if err != nil {
		return err
	}
	defer d.Close()

	c, err := colorful.Hex(args[2])
	if err != nil {
		return fmt.Errorf("invalid colour %q: %w", args[2], err)
	}

	frame := make([]byte, count*3)
	fill(frame, c)
	if err := d.Send(frame); err != nil {
		return err
	}
	fmt.Printf("Sent %d pixels of %s to %s\n", count, c.Hex(), args[0])
	return nil
}

func sweep(args []string) error {
	d, count, err := dial(args, 2)
	if err != nil {
		return err
	}
	defer d.Close()

	frame := make([]byte, count*3)
	ticker := time.NewTicker(20 * time.Millisecond)
	defer ticker.Stop()
	deadline := time.After(10 * time.Second)

	fmt.Println("Sweeping hue for 10 seconds...")
	hue := 0.0
	for {
		select {
		case <-deadline:
			fill(frame, colorful.Color{})
			return d.Send(frame)
		case <-ticker.C:
			fill(frame, colorful.Hsv(hue, 1, 1))
			if err := d.Send(frame); err != nil {
				return err
			}
			hue = float64(int(hue+2) % 360)
		}
	}
}

func listen(args []string) error {
	port := sink.DDPPort
	if len(args) > 0 {
		p, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid port %q", args[0])
		}
		port = p
	}

	conn, err := net.ListenUDP("udp", &net.UDPAddr{Port: port})
	if err != nil {
		return err
	}
	defer conn.Close()

	fmt.Printf("Listening on :%d (Ctrl+C to stop)\n", port)
	buf := make([]byte, 2048)
	for {
		n, from, err := conn.ReadFromUDP(buf)
		if err != nil {
			return err
		}
		p, err := sink.DecodePacket(buf[:n])
		if err != nil {
			fmt.Printf("%s: %v\n", from, err)
			continue
		}
		fmt.Printf("%s: seq=%2d offset=%5d len=%4d push=%v\n", from, p.Seq, p.Offset, len(p.Data), p.Push)
	}
}

func layout(args []string) error {
	if len(args) < 1 {
		usage()
		return fmt.Errorf("missing layout file")
	}
	l, err := pixel.LoadLayout(args[0])
	if err != nil {
		return err
	}

	highest := -1
	for _, e := range l.Entries {
		highest = max(highest, e.Index)
	}
	b := l.Bounds()
	fmt.Printf("Entries:  %d\n", len(l.Entries))
	fmt.Printf("Skipped:  %d malformed lines\n", l.Skipped)
	fmt.Printf("Highest:  %d (needs at least %d pixels)\n", highest, highest+1)
	fmt.Printf("Bounds:   %s .. %s\n", b.Min, b.Max)
	return nil
}
