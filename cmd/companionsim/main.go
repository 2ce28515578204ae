// Companion simulator: plays the phone side of the link. Connects to the
// watch engine's websocket endpoint, answers request-data markers and
// pushes a synthetic drifting glucose trace on an interval.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"strings"
	"time"

	"github.com/gorilla/websocket"
)

func main() {
	addr := flag.String("addr", "ws://localhost:8099/companion/ws", "watch engine websocket endpoint")
	interval := flag.Duration("interval", 5*time.Minute, "push interval")
	low := flag.Int("low", 70, "low threshold")
	high := flag.Int("high", 180, "high threshold")
	flag.Parse()

	c, _, err := websocket.DefaultDialer.Dial(*addr, nil)
	if err != nil {
		log.Fatal("dial err:", err)
	}
	defer c.Close()
	log.Println("connected to", *addr)

	trace := newTrace(140)

	// First push reveals the face immediately.
	if err := sendPush(c, trace, *low, *high); err != nil {
		log.Fatal("initial push err:", err)
	}

	requests := make(chan struct{}, 4)
	go func() {
		for {
			_, msg, err := c.ReadMessage()
			if err != nil {
				log.Println("read err:", err)
				close(requests)
				return
			}
			log.Printf("RX <- %s\n", string(msg))

			var marker struct {
				RequestData int `json:"requestData"`
			}
			if err := json.Unmarshal(msg, &marker); err != nil || marker.RequestData != 1 {
				log.Println("unexpected message, ignoring")
				continue
			}
			select {
			case requests <- struct{}{}:
			default:
			}
		}
	}()

	ticker := time.NewTicker(*interval)
	defer ticker.Stop()

	for {
		select {
		case _, ok := <-requests:
			if !ok {
				return
			}
		case <-ticker.C:
			trace.advance()
		}
		if err := sendPush(c, trace, *low, *high); err != nil {
			log.Println("push err:", err)
			return
		}
	}
}

// trace is a random walk bounded to a plausible glucose band.
type trace struct {
	values []int // most recent first
}

func newTrace(start int) *trace {
	t := &trace{values: []int{start}}
	for i := 0; i < 11; i++ {
		t.advance()
	}
	return t
}

func (t *trace) advance() {
	next := t.values[0] + rand.Intn(21) - 10
	if next < 50 {
		next = 50
	}
	if next > 280 {
		next = 280
	}
	t.values = append([]int{next}, t.values...)
	if len(t.values) > 24 {
		t.values = t.values[:24]
	}
}

func (t *trace) history() string {
	parts := make([]string, len(t.values))
	for i, v := range t.values {
		parts[i] = fmt.Sprintf("%d:%d", v, i*5)
	}
	return strings.Join(parts, ",")
}

func (t *trace) trend() uint8 {
	if len(t.values) < 2 {
		return 4 // flat
	}
	delta := t.values[0] - t.values[1]
	switch {
	case delta <= -10:
		return 6 // down
	case delta < -3:
		return 5 // down 45
	case delta > 10:
		return 2 // up
	case delta > 3:
		return 3 // up 45
	default:
		return 4
	}
}

func sendPush(c *websocket.Conn, t *trace, low, high int) error {
	value := fmt.Sprintf("%d", t.values[0])
	delta := "+0"
	if len(t.values) > 1 {
		delta = fmt.Sprintf("%+d", t.values[0]-t.values[1])
	}
	trend := t.trend()
	age := 0
	history := t.history()
	needsSetup := false

	var alert *uint8
	if t.values[0] >= high {
		a := uint8(2)
		alert = &a
	} else if t.values[0] <= low+10 {
		a := uint8(1)
		alert = &a
	}

	push := map[string]any{
		"value":      value,
		"delta":      delta,
		"trend":      trend,
		"ageMinutes": age,
		"history":    history,
		"low":        low,
		"high":       high,
		"needsSetup": needsSetup,
		"battery":    60 + rand.Intn(40),
		"charging":   rand.Intn(10) == 0,
	}
	if alert != nil {
		push["alert"] = *alert
	}

	data, err := json.Marshal(push)
	if err != nil {
		return err
	}
	log.Printf("TX -> %s\n", string(data))
	return c.WriteMessage(websocket.TextMessage, data)
}
