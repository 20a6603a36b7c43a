package stream_test

import (
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/openagentsbuilder/oab/pkg/stream"
)

var _ = Describe("Collect", func() {
	It("concatenates text events and skips the rest", func() {
		r := stream.NewReader(newChunkedBody("0:\"A\"\n9:{\"toolCallId\":\"x\"}\n0:\"B\"\n"))
		text, err := stream.Collect(r.All())
		Expect(err).NotTo(HaveOccurred())
		Expect(text).To(Equal("AB"))
	})

	It("returns partial text with the transport error", func() {
		body := newChunkedBody("0:\"A\"\n")
		body.err = errors.New("broken pipe")
		text, err := stream.Collect(stream.NewReader(body).All())
		Expect(err).To(MatchError(ContainSubstring("broken pipe")))
		Expect(text).To(Equal("A"))
	})
})

var _ = Describe("Dispatch", func() {
	It("calls the handler for each kind in order", func() {
		var seen []kindContent
		handlers := stream.Handlers{}
		for _, k := range stream.Kinds() {
			handlers[k] = func(content any) {
				seen = append(seen, kindContent{k, content})
			}
		}

		finished := false
		err := stream.Dispatch(stream.NewReader(newChunkedBody(conversation)).All(), stream.Callbacks{
			Handlers: handlers,
			OnFinish: func() { finished = true },
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(finished).To(BeTrue())

		direct, err := drain(stream.NewReader(newChunkedBody(conversation)))
		Expect(err).NotTo(HaveOccurred())
		Expect(seen).To(Equal(direct))
	})

	It("drops kinds without a handler", func() {
		var texts []any
		err := stream.Dispatch(stream.NewReader(newChunkedBody(conversation)).All(), stream.Callbacks{
			Handlers: stream.Handlers{
				stream.KindText: func(content any) { texts = append(texts, content) },
			},
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(texts).To(Equal([]any{"Hel", "lo, ", "it is sunny in Paris"}))
	})

	It("reports and returns stream errors without finishing", func() {
		body := newChunkedBody("0:\"A\"\n")
		body.err = errors.New("timeout")

		var message string
		finished := false
		err := stream.Dispatch(stream.NewReader(body).All(), stream.Callbacks{
			OnFinish: func() { finished = true },
			OnError:  func(m string) { message = m },
		})

		Expect(err).To(MatchError(ContainSubstring("timeout")))
		Expect(message).To(ContainSubstring("timeout"))
		Expect(finished).To(BeFalse())
	})
})
