package handlers_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"taproom-admin-api/config"
	"taproom-admin-api/storage"
)

func multipartUpload(t *testing.T, env *testEnv, name string, content []byte) (int, map[string]interface{}) {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	fw, err := w.CreateFormFile("file", name)
	if err != nil {
		t.Fatal(err)
	}
	fw.Write(content)
	w.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/uploads", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+env.adminToken)
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)

	resp := map[string]interface{}{}
	json.Unmarshal(rec.Body.Bytes(), &resp)
	return rec.Code, resp
}

func TestUploadAndDelete(t *testing.T) {
	env := newTestEnv(t)

	status, resp := multipartUpload(t, env, "lager.png", []byte("image bytes"))
	if status != http.StatusCreated {
		t.Fatalf("status %d, resp %v", status, resp)
	}
	path, _ := resp["path"].(string)
	if path == "" || resp["public_url"] == "" {
		t.Fatalf("missing path/public_url: %v", resp)
	}
	if _, err := os.Stat(filepath.Join(config.Media.Dir(), filepath.FromSlash(path))); err != nil {
		t.Fatalf("file not stored: %v", err)
	}

	status, _ = env.do(t, http.MethodDelete, "/api/uploads", env.adminToken,
		map[string]string{"path": path})
	if status != http.StatusOK {
		t.Errorf("delete: status %d", status)
	}
}

func TestUploadOversizeRejected(t *testing.T) {
	env := newTestEnv(t)

	big := bytes.Repeat([]byte("x"), storage.MaxUploadSize+1)
	status, _ := multipartUpload(t, env, "huge.png", big)
	if status != http.StatusRequestEntityTooLarge {
		t.Fatalf("status %d, want 413", status)
	}

	// nothing may reach disk
	var files []string
	filepath.Walk(config.Media.Dir(), func(p string, info os.FileInfo, err error) error {
		if err == nil && !info.IsDir() {
			files = append(files, p)
		}
		return nil
	})
	if len(files) != 0 {
		t.Errorf("rejected upload left files: %v", files)
	}
}
