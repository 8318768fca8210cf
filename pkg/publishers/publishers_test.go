package publishers

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, name, raw string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	return path
}

func TestLoadRegistryEnabledFilter(t *testing.T) {
	path := writeConfig(t, "publishers.yaml", `
publishers:
  - id: http1
    type: http
    enabled: false
    http:
      url: https://example.com
  - id: topic
    type: SNS
    sns:
      topic_arn: " arn:aws:sns:eu-west-1:1:meals "
      region: eu-west-1
  - id: ps
    type: pubsub
    pubsub:
      project_id: demo
      topic: meals
`)

	reg, err := LoadRegistry(path)
	if err != nil {
		t.Fatalf("LoadRegistry: %v", err)
	}

	enabled := reg.Enabled()
	if len(enabled) != 2 {
		t.Fatalf("expected 2 enabled publishers, got %d", len(enabled))
	}
	topic, ok := reg.ByID("topic")
	if !ok || topic.Type != TypeSNS || topic.SNS.TopicARN != "arn:aws:sns:eu-west-1:1:meals" {
		t.Fatalf("unexpected sns config %+v", topic)
	}
	http1, _ := reg.ByID("http1")
	if http1.HTTP.Method != httpDefaultMethod || http1.HTTP.TimeoutSeconds != httpDefaultTimeoutSeconds {
		t.Fatalf("http defaults not applied: %+v", http1.HTTP)
	}
}

func TestLoadRegistryJSON(t *testing.T) {
	path := writeConfig(t, "publishers.json", `{"publishers":[{"id":"q","type":"sqs","sqs":{"uri":"https://q","region":"us-east-1"}}]}`)
	reg, err := LoadRegistry(path)
	if err != nil {
		t.Fatalf("LoadRegistry: %v", err)
	}
	if len(reg.All()) != 1 {
		t.Fatalf("expected 1 publisher")
	}
}

func TestLoadRegistryValidation(t *testing.T) {
	cases := map[string]string{
		"duplicate id": `
publishers:
  - {id: a, type: http, http: {url: "https://a"}}
  - {id: a, type: http, http: {url: "https://b"}}
`,
		"sqs without region": `
publishers:
  - {id: q, type: sqs, sqs: {uri: "https://q"}}
`,
		"sqs with half a key pair": `
publishers:
  - {id: q, type: sqs, sqs: {uri: "https://q", region: eu-west-1, access_key_id: AKID}}
`,
		"sns without arn": `
publishers:
  - {id: s, type: sns, sns: {region: eu-west-1}}
`,
		"pubsub without topic": `
publishers:
  - {id: p, type: pubsub, pubsub: {project_id: demo}}
`,
		"unknown type": `
publishers:
  - {id: k, type: kafka}
`,
	}

	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := LoadRegistry(writeConfig(t, "publishers.yaml", raw)); err == nil {
				t.Fatalf("expected validation error")
			}
		})
	}
}

func TestSanitizeHeadersDropsBlankEntries(t *testing.T) {
	got := sanitizeHeaders(map[string]string{" X-Key ": " v ", "": "x", "Empty": " "})
	if len(got) != 1 || got["X-Key"] != "v" {
		t.Fatalf("unexpected headers %v", got)
	}
	if sanitizeHeaders(map[string]string{"a": ""}) != nil {
		t.Fatal("expected nil when nothing survives")
	}
}
