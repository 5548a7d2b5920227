// Package tgwire is a typed dispatch facade for the Telegram Bot API.
//
// The facade binds a typed request to a transport-neutral HTTP exchange and
// back to a typed response. Transport lives behind the pluggable connector
// capability; serialization and deserialization live with the schema layer in
// the tg subpackage.
//
// # Quick Start
//
//	api := tgwire.New(token)
//
//	me, err := tgwire.Send(ctx, api, tg.GetMe{})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println("authorized as", me.Username)
//
// # Deadlines
//
// SendTimeout wraps one dispatch in a monotonic deadline. Expiry is not an
// error; it yields a nil result:
//
//	msg, err := tgwire.SendTimeout(ctx, api, tg.SendMessage{
//	    ChatID: chatID,
//	    Text:   "hello",
//	}, 2*time.Second)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if msg == nil {
//	    // deadline expired before the exchange completed
//	}
//
// # Updates
//
//	stream := api.Stream()
//	if err := stream.Start(ctx); err != nil {
//	    log.Fatal(err)
//	}
//	defer stream.Stop()
//
//	for update := range stream.Updates() {
//	    _ = update
//	}
//
// # Custom transport
//
// Any implementation of connector.Connector can replace the default:
//
//	api := tgwire.NewWithConnector(token,
//	    connector.WithBreaker(connector.New(), connector.DefaultBreakerSettings()))
//
// Handles are cheap to clone and safe to share: clones reference one immutable
// record, so no locking is involved anywhere on the dispatch path.
package tgwire
