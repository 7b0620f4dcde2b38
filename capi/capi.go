// C-linkage surface for lmbridge, built as a shared library:
//
//	go build -buildmode=c-shared -o liblmbridge.so ./capi
//
// Handles cross the boundary as uint64 values; status codes are the small
// negative integers from package spec; response strings are malloc'd and
// owned by the caller, who must release each one exactly once with
// LmBridgeFreeString. LmBridgeLastError returns a read-only view that stays
// valid until the calling thread's next failing operation.
//
// A concrete engine driver must be linked in; add an underscore import of
// the driver package below. With no driver registered every create call
// reports the not-initialized status.
package main

/*
#include <stdint.h>
#include <stdlib.h>
*/
import "C"

import (
	"context"
	"sync"
	"unsafe"

	lmbridge "github.com/lmbridge/lmbridge-go"
	"github.com/lmbridge/lmbridge-go/internal/lasterr"
	"github.com/lmbridge/lmbridge-go/spec"
)

var (
	bridgeOnce sync.Once
	bridge     *lmbridge.Bridge
	bridgeErr  error
)

func getBridge() (*lmbridge.Bridge, error) {
	bridgeOnce.Do(func() {
		bridge, bridgeErr = lmbridge.New()
	})
	return bridge, bridgeErr
}

// status mirrors err into the thread-local error shim and returns its code.
func status(err error) spec.Status {
	if err != nil {
		lasterr.Set(err.Error())
	}
	return spec.StatusOf(err)
}

func engineCreate(modelPath string, backend int32) (uint64, spec.Status) {
	b, err := getBridge()
	if err != nil {
		return 0, status(err)
	}
	h, err := b.CreateEngine(context.Background(), modelPath, spec.Backend(backend))
	if err != nil {
		return 0, status(err)
	}
	return uint64(h), spec.StatusOK
}

func engineDestroy(engine uint64) {
	b, err := getBridge()
	if err != nil {
		return
	}
	b.DestroyEngine(lmbridge.EngineHandle(engine))
}

func conversationCreate(engine uint64, instruction string) (uint64, spec.Status) {
	b, err := getBridge()
	if err != nil {
		return 0, status(err)
	}
	h, err := b.CreateConversation(context.Background(), lmbridge.EngineHandle(engine), instruction)
	if err != nil {
		return 0, status(err)
	}
	return uint64(h), spec.StatusOK
}

func conversationSend(conversation uint64, role, content string) (string, spec.Status) {
	b, err := getBridge()
	if err != nil {
		return "", status(err)
	}
	text, err := b.SendMessage(context.Background(),
		lmbridge.ConversationHandle(conversation), spec.Role(role), content)
	if err != nil {
		return "", status(err)
	}
	return text, spec.StatusOK
}

func conversationDestroy(conversation uint64) {
	b, err := getBridge()
	if err != nil {
		return
	}
	b.DestroyConversation(lmbridge.ConversationHandle(conversation))
}

func invalidArgs(msg string) C.int32_t {
	lasterr.Set(msg)
	return C.int32_t(spec.StatusInvalidArgs)
}

//export LmBridgeEngineCreate
func LmBridgeEngineCreate(modelPath *C.char, backend C.int32_t, outEngine *C.uint64_t) C.int32_t {
	if modelPath == nil || outEngine == nil {
		return invalidArgs("invalid arguments: model_path or out_engine is null")
	}
	h, st := engineCreate(C.GoString(modelPath), int32(backend))
	if st == spec.StatusOK {
		*outEngine = C.uint64_t(h)
	}
	return C.int32_t(st)
}

//export LmBridgeEngineDestroy
func LmBridgeEngineDestroy(engine C.uint64_t) {
	engineDestroy(uint64(engine))
}

//export LmBridgeConversationCreate
func LmBridgeConversationCreate(engine C.uint64_t, outConversation *C.uint64_t) C.int32_t {
	return LmBridgeConversationCreateWithSystem(engine, nil, outConversation)
}

//export LmBridgeConversationCreateWithSystem
func LmBridgeConversationCreateWithSystem(engine C.uint64_t, systemInstruction *C.char, outConversation *C.uint64_t) C.int32_t {
	if outConversation == nil {
		return invalidArgs("invalid arguments: out_conversation is null")
	}
	instruction := ""
	if systemInstruction != nil {
		instruction = C.GoString(systemInstruction)
	}
	h, st := conversationCreate(uint64(engine), instruction)
	if st == spec.StatusOK {
		*outConversation = C.uint64_t(h)
	}
	return C.int32_t(st)
}

//export LmBridgeConversationSendMessage
func LmBridgeConversationSendMessage(conversation C.uint64_t, role, content *C.char, outResponse **C.char) C.int32_t {
	if role == nil || content == nil || outResponse == nil {
		return invalidArgs("invalid arguments: role, content, or out_response is null")
	}
	text, st := conversationSend(uint64(conversation), C.GoString(role), C.GoString(content))
	if st == spec.StatusOK {
		// Ownership transfers to the caller; released via LmBridgeFreeString.
		*outResponse = C.CString(text)
	}
	return C.int32_t(st)
}

//export LmBridgeConversationDestroy
func LmBridgeConversationDestroy(conversation C.uint64_t) {
	conversationDestroy(uint64(conversation))
}

//export LmBridgeFreeString
func LmBridgeFreeString(s *C.char) {
	if s != nil {
		C.free(unsafe.Pointer(s))
	}
}

var lastErrBufs = newErrBufs(
	func(msg string) unsafe.Pointer { return unsafe.Pointer(C.CString(msg)) },
	func(p unsafe.Pointer) { C.free(p) },
)

//export LmBridgeLastError
func LmBridgeLastError() *C.char {
	return (*C.char)(lastErrBufs.view(lasterr.ThreadID(), lasterr.Get()))
}

func main() {}
