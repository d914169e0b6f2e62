package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/rosette-api/rosette-go/client"
)

func newSDK(t *testing.T, ts *httptest.Server) *client.Client {
	t.Helper()
	sdk, err := client.New("mcp-key", client.WithHTTPClient(ts.Client()), client.WithServiceURL(ts.URL))
	if err != nil {
		t.Fatalf("client.New: %v", err)
	}
	t.Cleanup(func() { _ = sdk.Close() })
	return sdk
}

func callRequest(args map[string]any) mcp.CallToolRequest {
	return mcp.CallToolRequest{Params: mcp.CallToolParams{Arguments: args}}
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	if res == nil || len(res.Content) == 0 {
		t.Fatalf("empty result")
	}
	tc, ok := res.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("expected TextContent, got %T", res.Content[0])
	}
	return tc.Text
}

func TestDocumentTool(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/entities" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body["content"] != "Bill Murray will appear in new Ghostbusters film." || body["language"] != "eng" {
			t.Errorf("unexpected body %v", body)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"entities":[{"type":"PERSON","mention":"Bill Murray"}]}`)
	}))
	defer ts.Close()

	dh := NewDocumentHandler(newSDK(t, ts))
	res, err := dh.handleDocument(context.Background(), callRequest(map[string]any{
		"operation": "entities",
		"content":   "Bill Murray will appear in new Ghostbusters film.",
		"language":  "eng",
	}))
	if err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if res.IsError {
		t.Fatalf("unexpected tool error: %s", resultText(t, res))
	}

	var payload map[string]any
	if err := json.Unmarshal([]byte(resultText(t, res)), &payload); err != nil {
		t.Fatalf("failed to parse response JSON: %v", err)
	}
	if _, ok := payload["entities"]; !ok {
		t.Fatalf("missing entities in %v", payload)
	}
}

func TestDocumentTool_RejectsUnknownOperation(t *testing.T) {
	var hits int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
	}))
	defer ts.Close()

	dh := NewDocumentHandler(newSDK(t, ts))
	for _, op := range []string{"name-translation", "morphology/complete", "ping"} {
		res, err := dh.handleDocument(context.Background(), callRequest(map[string]any{"operation": op, "content": "x"}))
		if err != nil {
			t.Fatalf("handler returned error: %v", err)
		}
		if !res.IsError {
			t.Fatalf("expected tool error for %s", op)
		}
	}
	if atomic.LoadInt32(&hits) != 0 {
		t.Fatalf("expected no requests")
	}
}

func TestDocumentTool_MissingContentIsToolError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("unexpected request %s", r.URL.Path)
	}))
	defer ts.Close()

	dh := NewDocumentHandler(newSDK(t, ts))
	res, err := dh.handleDocument(context.Background(), callRequest(map[string]any{"operation": "sentiment"}))
	if err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if !res.IsError || !strings.Contains(resultText(t, res), "content") {
		t.Fatalf("expected validation tool error, got %+v", res)
	}
}

func TestMorphologyTool(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/morphology/compound-components" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		_, _ = io.WriteString(w, `{"compoundComponents":["Recht","Schutz","Versicherung","Gesellschaft"]}`)
	}))
	defer ts.Close()

	mh := NewMorphologyHandler(newSDK(t, ts))
	res, err := mh.handleMorphology(context.Background(), callRequest(map[string]any{
		"content": "Rechtsschutzversicherungsgesellschaften",
		"output":  "compound-components",
	}))
	if err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if res.IsError || !strings.Contains(resultText(t, res), "Versicherung") {
		t.Fatalf("unexpected result %s", resultText(t, res))
	}
}

func TestNameTools(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)
		switch r.URL.Path {
		case "/name-translation":
			if body["name"] != "Ali Smith" || body["targetLanguage"] != "ara" {
				t.Errorf("unexpected translation body %v", body)
			}
			_, _ = io.WriteString(w, `{"translation":"علي سميث"}`)
		case "/name-similarity":
			n1, _ := body["name1"].(map[string]any)
			if n1["text"] != "Michael Jackson" || n1["entityType"] != "PERSON" {
				t.Errorf("unexpected similarity body %v", body)
			}
			_, _ = io.WriteString(w, `{"score":0.93}`)
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
	defer ts.Close()

	nh := NewNameHandler(newSDK(t, ts))
	ctx := context.Background()

	res, err := nh.handleNameTranslation(ctx, callRequest(map[string]any{"name": "Ali Smith", "target_language": "ara"}))
	if err != nil || res.IsError {
		t.Fatalf("translation failed: %v %+v", err, res)
	}
	if !strings.Contains(resultText(t, res), "translation") {
		t.Fatalf("unexpected translation result %s", resultText(t, res))
	}

	res, err = nh.handleNameTranslation(ctx, callRequest(map[string]any{"name": "Ali Smith"}))
	if err != nil || !res.IsError {
		t.Fatalf("expected tool error when target_language is missing")
	}

	res, err = nh.handleNameSimilarity(ctx, callRequest(map[string]any{
		"name1": "Michael Jackson", "name2": "迈克尔·杰克逊", "entity_type": "PERSON",
	}))
	if err != nil || res.IsError {
		t.Fatalf("similarity failed: %v %+v", err, res)
	}
	if !strings.Contains(resultText(t, res), "0.93") {
		t.Fatalf("unexpected similarity result %s", resultText(t, res))
	}
}

func TestServiceTools_APIErrorIsToolError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/ping" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = io.WriteString(w, `{"message":"invalid key"}`)
			return
		}
		_, _ = io.WriteString(w, `{"name":"Rosette API","version":"1.0"}`)
	}))
	defer ts.Close()

	sh := NewServiceHandler(newSDK(t, ts))
	res, err := sh.handlePing(context.Background(), callRequest(nil))
	if err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if !res.IsError || !strings.Contains(resultText(t, res), "invalid key") {
		t.Fatalf("expected invalid key tool error, got %s", resultText(t, res))
	}

	res, err = sh.handleInfo(context.Background(), callRequest(nil))
	if err != nil || res.IsError {
		t.Fatalf("info failed: %v %+v", err, res)
	}
}
