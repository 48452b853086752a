package asset

import (
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLocalResource(t *testing.T) {
	file := filepath.Join(t.TempDir(), "scene.opt")
	payload := "local geometry bytes"
	if err := os.WriteFile(file, []byte(payload), 0644); err != nil {
		t.Fatal(err)
	}

	res, err := NewResource(file, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer res.Close()

	if res.IsRemote() {
		t.Fatal("expected local file resource not to be remote")
	}

	data, err := ioutil.ReadAll(res)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != payload {
		t.Fatalf("expected resource content to be %q; got %q", payload, string(data))
	}
}

func TestLocalResourceRelativeTo(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "included.obj"), []byte("v 0 0 0"), 0644); err != nil {
		t.Fatal(err)
	}
	parentFile := filepath.Join(dir, "parent.obj")
	if err := os.WriteFile(parentFile, []byte(""), 0644); err != nil {
		t.Fatal(err)
	}

	parent, err := NewResource(parentFile, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer parent.Close()

	res, err := NewResource("included.obj", parent)
	if err != nil {
		t.Fatal(err)
	}
	defer res.Close()

	data, err := ioutil.ReadAll(res)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "v 0 0 0" {
		t.Fatalf("expected relative resource content; got %q", string(data))
	}
}

func TestRemoteResource(t *testing.T) {
	payload := "remote geometry bytes"
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(payload))
	}))
	defer server.Close()

	res, err := NewResource(server.URL+"/scene.opt", nil)
	if err != nil {
		t.Fatal(err)
	}
	defer res.Close()

	if !res.IsRemote() {
		t.Fatal("expected http resource to be remote")
	}

	data, err := ioutil.ReadAll(res)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != payload {
		t.Fatalf("expected resource content to be %q; got %q", payload, string(data))
	}
}

func TestRemoteResourceErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()

	if _, err := NewResource(server.URL+"/missing.opt", nil); err == nil {
		t.Fatal("expected a 404 response to fail")
	}
}

func TestMissingLocalResource(t *testing.T) {
	if _, err := NewResource(filepath.Join(t.TempDir(), "missing.opt"), nil); err == nil {
		t.Fatal("expected a missing file to fail")
	}
}

func TestResourceFromStream(t *testing.T) {
	res := NewResourceFromStream("stream.obj", strings.NewReader("payload"))
	defer res.Close()

	if res.Path() != "stream.obj" {
		t.Fatalf("expected path to be stream.obj; got %s", res.Path())
	}

	data, err := ioutil.ReadAll(res)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "payload" {
		t.Fatalf("expected stream content to be payload; got %q", string(data))
	}
}
