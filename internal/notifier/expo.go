package notifier

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

const DefaultExpoURL = "https://exp.host/--/api/v2/push/send"

type expoMessage struct {
	To    string `json:"to"`
	Title string `json:"title"`
	Body  string `json:"body"`
	Sound string `json:"sound,omitempty"`
}

type expoTicket struct {
	Status  string `json:"status"`
	ID      string `json:"id,omitempty"`
	Message string `json:"message,omitempty"`
	Details struct {
		Error string `json:"error,omitempty"`
	} `json:"details"`
}

type expoResponse struct {
	Data   expoTicket `json:"data"`
	Errors []struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"errors,omitempty"`
}

// ExpoNotifier sends messages through the Expo push service.
type ExpoNotifier struct {
	client *resty.Client
	url    string
}

// NewExpoNotifier builds a notifier posting to url. accessToken is optional.
func NewExpoNotifier(url, accessToken string, timeout time.Duration) *ExpoNotifier {
	if url == "" {
		url = DefaultExpoURL
	}
	client := resty.New().
		SetTimeout(timeout).
		SetRetryCount(2).
		SetRetryWaitTime(200*time.Millisecond).
		SetHeader("Accept", "application/json").
		SetHeader("Content-Type", "application/json")
	if accessToken != "" {
		client.SetAuthToken(accessToken)
	}
	return &ExpoNotifier{client: client, url: url}
}

func (n *ExpoNotifier) Send(ctx context.Context, token, title, body string) error {
	var result expoResponse
	resp, err := n.client.R().
		SetContext(ctx).
		SetBody(expoMessage{To: token, Title: title, Body: body, Sound: "default"}).
		SetResult(&result).
		SetError(&result).
		Post(n.url)
	if err != nil {
		return &DeliveryError{Token: token, Err: err}
	}
	if resp.IsError() {
		msg := resp.Status()
		if len(result.Errors) > 0 {
			msg = result.Errors[0].Code + ": " + result.Errors[0].Message
		}
		return &DeliveryError{Token: token, Err: fmt.Errorf("push service returned %s", msg)}
	}
	if result.Data.Status == "error" {
		reason := result.Data.Details.Error
		if reason == "" {
			reason = result.Data.Message
		}
		return &DeliveryError{Token: token, Err: errors.New(reason)}
	}
	return nil
}
