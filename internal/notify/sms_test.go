package notify

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestTextSender_PostsFormToGateway(t *testing.T) {
	t.Parallel()

	var gotForm map[string]string
	var gotAuth [2]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			t.Errorf("failed to parse form: %v", err)
		}
		gotForm = map[string]string{
			"To":   r.PostFormValue("To"),
			"From": r.PostFormValue("From"),
			"Body": r.PostFormValue("Body"),
		}
		user, pass, _ := r.BasicAuth()
		gotAuth = [2]string{user, pass}
		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()

	sender := NewTextSender(SMSConfig{
		GatewayURL: server.URL,
		AccountSID: "sid",
		AuthToken:  "token",
		From:       "+15550000",
	}, server.Client())

	if err := sender.SendText(context.Background(), "+15550100", "remember to vote"); err != nil {
		t.Fatalf("SendText returned error: %v", err)
	}

	if gotForm["To"] != "+15550100" || gotForm["From"] != "+15550000" || gotForm["Body"] != "remember to vote" {
		t.Fatalf("unexpected form payload: %v", gotForm)
	}
	if gotAuth != [2]string{"sid", "token"} {
		t.Fatalf("unexpected credentials: %v", gotAuth)
	}
}

func TestTextSender_GatewayRejection(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "invalid number", http.StatusBadRequest)
	}))
	defer server.Close()

	sender := NewTextSender(SMSConfig{GatewayURL: server.URL}, server.Client())

	err := sender.SendText(context.Background(), "not-a-number", "hello")
	if err == nil {
		t.Fatal("expected error for rejected message")
	}
	if !strings.Contains(err.Error(), "status 400") {
		t.Fatalf("error must carry the gateway status, got %q", err)
	}
}

func TestTextSender_GatewayUnreachable(t *testing.T) {
	t.Parallel()

	sender := NewTextSender(SMSConfig{GatewayURL: "http://127.0.0.1:1/sms"}, nil)

	if err := sender.SendText(context.Background(), "+15550100", "hello"); err == nil {
		t.Fatal("expected error for unreachable gateway")
	}
}

func TestEmailSender_RejectsInvalidAddresses(t *testing.T) {
	t.Parallel()

	sender := NewEmailSender(EmailConfig{Host: "smtp.example.com", Port: 587, From: "elections@example.com"})

	if err := sender.SendEmail(context.Background(), "not an address", "subject", "body"); err == nil {
		t.Fatal("expected error for invalid recipient address")
	}
}
