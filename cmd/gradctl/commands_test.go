package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/yigit/gradtracker/internal/app/models"
	"github.com/yigit/gradtracker/internal/app/models/dto"
	"github.com/yigit/gradtracker/internal/pkg/fieldcrypt"
)

const testKey = "gradctl-test-key"

func fakeAPI(t *testing.T) *httptest.Server {
	t.Helper()
	cipher, err := fieldcrypt.New(testKey)
	if err != nil {
		t.Fatalf("fieldcrypt.New: %v", err)
	}
	question, err := cipher.Encrypt("pet name")
	if err != nil {
		t.Fatalf("Encrypt: %v", err)
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/register":
			var req dto.RegisterGraduateRequest
			_ = json.NewDecoder(r.Body).Decode(&req)
			if req.Name != "Li Hua" || req.GraduationYear != "2023" || req.SecurityAnswer != "Fluffy" {
				t.Errorf("register request = %+v", req)
			}
			_ = json.NewEncoder(w).Encode(dto.RegisterGraduateResponse{Success: true, ID: 5})
		case "/api/search":
			_ = json.NewEncoder(w).Encode(dto.SearchGraduatesResponse{
				Success: true,
				Count:   1,
				Data: []models.GraduateSummary{{
					ID: 5, Name: "Li Hua", Highschool: "No.1", GraduationYear: "2023", SecurityQuestion: question,
				}},
			})
		case "/api/verify":
			var req dto.VerifyAnswerRequest
			_ = json.NewDecoder(r.Body).Decode(&req)
			resp := dto.VerifyAnswerResponse{Success: true}
			if strings.EqualFold(req.Answer, "fluffy") {
				resp.IsCorrect = true
				resp.Data = &models.GraduateDetails{
					Name: "Li Hua", Highschool: "No.1", GraduationYear: "2023",
					DestinationType: "university", Destination: "Peking University",
				}
			}
			_ = json.NewEncoder(w).Encode(resp)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	err := newApp(&out).Run(append([]string{"gradctl"}, args...))
	return out.String(), err
}

func TestGradctl_Register(t *testing.T) {
	srv := fakeAPI(t)
	out, err := run(t, "--server", srv.URL, "register",
		"--name", "Li Hua", "--highschool", "No.1", "--year", "2023",
		"--destination", "Peking University", "--question", "pet name", "--answer", "Fluffy")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if !strings.Contains(out, "registered graduate 5") {
		t.Errorf("output = %q", out)
	}
}

func TestGradctl_SearchDecryptsWithKey(t *testing.T) {
	srv := fakeAPI(t)

	out, err := run(t, "--server", srv.URL, "--key", testKey, "search", "--name", "li")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if !strings.Contains(out, "pet name") {
		t.Errorf("question not decrypted: %q", out)
	}

	out, err = run(t, "--server", srv.URL, "--key", "", "search", "--name", "li")
	if err != nil {
		t.Fatalf("search without key: %v", err)
	}
	if !strings.Contains(out, "(encrypted)") {
		t.Errorf("output = %q", out)
	}
}

func TestGradctl_Verify(t *testing.T) {
	srv := fakeAPI(t)

	out, err := run(t, "--server", srv.URL, "verify", "--id", "5", "--answer", "fluffy")
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if !strings.Contains(out, "Peking University") {
		t.Errorf("output = %q", out)
	}

	out, err = run(t, "--server", srv.URL, "verify", "--id", "5", "--answer", "Rex")
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if !strings.Contains(out, "incorrect answer") {
		t.Errorf("output = %q", out)
	}
}
