// Package tg holds the schema layer shared by the facade: the bot token
// wrapper, the error taxonomy, the core Bot API types, and a working subset of
// typed method requests. Each request knows how to serialize itself into a
// wire.Request and how to deserialize a wire.Response into its result type;
// the dispatch facade in the root package stays schema-agnostic.
package tg
