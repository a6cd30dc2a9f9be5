package ollama_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/papercomputeco/crucible/pkg/generate/ollama"
)

var _ = Describe("Generator", func() {
	var (
		server   *httptest.Server
		received map[string]any
		reply    string
		status   int
	)

	BeforeEach(func() {
		received = nil
		reply = "Mud💩"
		status = http.StatusOK

		server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			Expect(r.URL.Path).To(Equal("/api/generate"))
			Expect(json.NewDecoder(r.Body).Decode(&received)).To(Succeed())

			if status != http.StatusOK {
				w.WriteHeader(status)
				return
			}
			json.NewEncoder(w).Encode(map[string]string{"response": reply})
		}))
	})

	AfterEach(func() {
		server.Close()
	})

	newGenerator := func() *ollama.Generator {
		g, err := ollama.New(ollama.Config{BaseURL: server.URL, Model: "test-model"})
		Expect(err).NotTo(HaveOccurred())
		return g
	}

	It("returns the raw completion", func() {
		g := newGenerator()
		defer g.Close()

		text, err := g.Generate(context.Background(), "Water Earth")
		Expect(err).NotTo(HaveOccurred())
		Expect(text).To(Equal("Mud💩"))
	})

	It("sends the prompt, model, and sampling options", func() {
		g := newGenerator()
		defer g.Close()

		_, err := g.Generate(context.Background(), "Water Earth")
		Expect(err).NotTo(HaveOccurred())

		Expect(received["model"]).To(Equal("test-model"))
		Expect(received["prompt"]).To(Equal("Water Earth"))
		Expect(received["stream"]).To(BeFalse())
		Expect(received["system"]).To(ContainSubstring("crafting"))

		options, ok := received["options"].(map[string]any)
		Expect(ok).To(BeTrue())
		Expect(options["temperature"]).To(BeNumerically("~", 0.9, 0.001))
		Expect(options["top_k"]).To(BeNumerically("==", 32))
		Expect(options["num_predict"]).To(BeNumerically("==", 15))
	})

	It("surfaces non-200 responses as errors", func() {
		status = http.StatusInternalServerError
		g := newGenerator()
		defer g.Close()

		_, err := g.Generate(context.Background(), "Water Earth")
		Expect(err).To(MatchError(ContainSubstring("status 500")))
	})

	It("honors context cancellation", func() {
		g := newGenerator()
		defer g.Close()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := g.Generate(ctx, "Water Earth")
		Expect(err).To(HaveOccurred())
	})

	It("defaults the base URL and model", func() {
		g, err := ollama.New(ollama.Config{})
		Expect(err).NotTo(HaveOccurred())
		Expect(g.Name()).To(Equal("ollama"))
	})
})
