// This implements a simple long-running service over stdin/stdout so that a
// host written in another language (e.g. a bundler plugin running in Deno or
// node) can classify specifiers without starting a process for each one.

package main

import (
	"fmt"
	"io"
	"runtime/debug"
	"sync"

	"github.com/fxamacker/cbor/v2"

	"github.com/esdeno/mediatype/internal/logger"
	"github.com/esdeno/mediatype/pkg/api"
)

func runService(in io.Reader, out io.Writer) {
	buffer := make([]byte, 4096)
	stream := []byte{}

	// Write messages on a single goroutine so they aren't interleaved
	waitGroup := &sync.WaitGroup{}
	outgoingPackets := make(chan []byte)
	go func() {
		for message := range outgoingPackets {
			if _, err := out.Write(message); err != nil {
				logger.PrintErrorToStderr(nil, fmt.Sprintf("Failed to write to stdout: %s", err.Error()))
			}

			// Only signal that this request is done when it has actually been written
			waitGroup.Done()
		}
	}()

	for {
		// Read more data from stdin
		n, err := in.Read(buffer)
		stream = append(stream, buffer[:n]...)

		// Process all complete (i.e. not partial) packets
		bytes := stream
		for {
			message, afterMessage, ok := readLengthPrefixedSlice(bytes)
			if !ok {
				break
			}
			bytes = afterMessage

			// Clone the input and run it on another goroutine
			waitGroup.Add(1)
			clone := append([]byte{}, message...)
			go handleIncomingPacket(clone, outgoingPackets, waitGroup)
		}

		// Move the remaining partial message to the start to avoid reallocating
		stream = append(stream[:0], bytes...)

		if err == io.EOF {
			break // End of stdin
		}
		if err != nil {
			logger.PrintErrorToStderr(nil, fmt.Sprintf("Failed to read from stdin: %s", err.Error()))
			break
		}
	}

	// Wait for the last response to be written to stdout
	waitGroup.Wait()
	close(outgoingPackets)
}

func writeResponse(outgoingPackets chan []byte, id uint32, value response) {
	bytes, err := encodePacket(packet{id: id, value: value})
	if err != nil {
		// A response made only of strings and string slices always encodes
		panic(err)
	}
	outgoingPackets <- bytes
}

func handleIncomingPacket(bytes []byte, outgoingPackets chan []byte, waitGroup *sync.WaitGroup) {
	p, ok := decodePacket(bytes)
	if !ok || !p.isRequest {
		// There's no usable id to respond to
		waitGroup.Done()
		return
	}

	// Catch panics in the code below so they get passed to the caller
	defer func() {
		if r := recover(); r != nil {
			writeResponse(outgoingPackets, p.id, response{
				Error: fmt.Sprintf("Panic: %v\n\n%s", r, debug.Stack()),
				Kind:  "internal",
			})
		}
	}()

	var req request
	if err := cbor.Unmarshal(p.value.(cbor.RawMessage), &req); err != nil {
		writeResponse(outgoingPackets, p.id, response{
			Error: fmt.Sprintf("Invalid request: %s", err.Error()),
			Kind:  "request",
		})
		return
	}

	writeResponse(outgoingPackets, p.id, handleRequest(req))
}

func handleRequest(req request) response {
	switch req.Command {
	case "ping":
		return response{}

	case "classify":
		options := api.ClassifyOptions{ContentType: req.ContentType}
		if req.Precedence != "" {
			precedence, err := api.ParsePrecedence(req.Precedence)
			if err != nil {
				return response{Error: err.Error(), Kind: "request"}
			}
			options.Precedence = precedence
		}
		if req.Format != "" {
			format, err := api.ParseModuleFormat(req.Format)
			if err != nil {
				return response{Error: err.Error(), Kind: "request"}
			}
			options.Format = format
		}

		result := api.Classify(req.Specifier, options)
		if len(result.Errors) > 0 {
			return response{Error: result.Errors[0].Text, Kind: "parse"}
		}
		res := response{MediaType: result.MediaType, Loader: result.Loader}
		for _, msg := range result.Warnings {
			res.Warnings = append(res.Warnings, msg.Text)
		}
		return res

	default:
		return response{Error: fmt.Sprintf("Invalid command: %q", req.Command), Kind: "request"}
	}
}
