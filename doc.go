// Package sockets offers two clients over a persistent websocket
// connection.
//
// The first client is the [EventClient]. It is event based and gives you
// the most control:
//
//	client, err := sockets.New("wss://echo.websocket.org")
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer client.Close()
//
//	client.SetOnError(func(err error) {
//		log.Printf("error: %v", err)
//	})
//	client.SetOnConnection(func(c *sockets.EventClient) {
//		log.Printf("status: %v", c.Status())
//		c.SendString("Hello, World!")
//		c.SendBinary([]byte{20})
//	})
//	client.SetOnClose(func(code int, reason string) {
//		log.Printf("connection closed: %d %s", code, reason)
//	})
//	client.SetOnMessage(func(c *sockets.EventClient, m sockets.Message) {
//		log.Printf("new message: %v", m)
//	})
//
// The second client is the [PollingClient]. It is ideal for games,
// because it is designed to be drained from a loop. It is also much
// simpler than the EventClient, though the underlying EventClient stays
// reachable through its Client field for lower level control:
//
//	client, err := sockets.NewPolling("wss://echo.websocket.org")
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer client.Close()
//
//	for range time.Tick(100 * time.Millisecond) {
//		if client.Status() == sockets.StatusConnected {
//			client.SendString("Hello, World!")
//		}
//		// Receive returns every message since Receive was last called.
//		for _, m := range client.Receive() {
//			log.Printf("new message: %v", m)
//		}
//	}
//
// Both constructors return before the server has accepted the
// connection; acceptance is signaled through the on-connection callback
// or a StatusConnected status. All user callbacks run one at a time on a
// single dispatch goroutine, in the order the transport delivered the
// corresponding events.
package sockets
