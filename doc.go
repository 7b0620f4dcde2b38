// Package lmbridge is a narrow-waist boundary for driving a language-model
// inference engine across an ownership boundary: create an engine from model
// assets, open conversations against it, exchange role-tagged messages, and
// get back whole-response strings.
//
// Engines and conversations are addressed through opaque, generation-checked
// handles rather than pointers, so using a destroyed handle is a detected
// error. An engine whose handle is destroyed while conversations remain live
// stays open underneath until the last conversation is destroyed.
//
// The inference engine itself is a black box supplied by a driver (see
// package driver); drivers register like database/sql drivers:
//
//	import _ "example.com/somedriver" // registers itself
//
//	b, err := lmbridge.New()
//	eng, err := b.OpenEngine(ctx, "/models/gemma.litertlm", spec.BackendCPU)
//	defer eng.Close()
//
//	conv, err := eng.NewConversation(ctx, "You are a helpful assistant.")
//	defer conv.Close()
//
//	reply, err := conv.SendUser(ctx, "Hello!")
//
// SendMessage blocks for the full duration of generation. The package starts
// no goroutines and does not serialize calls across conversations; calls on
// one conversation must be serialized by the caller.
//
// The capi directory exposes this surface with C linkage (integer status
// codes, malloc'd strings, a per-thread last-error accessor) for callers in
// other languages.
package lmbridge
