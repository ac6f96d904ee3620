package lead

import "testing"

func TestParseInbound(t *testing.T) {
	tests := []struct {
		name        string
		contentType string
		body        string
		want        InboundMessage
	}{
		{
			name:        "flat json",
			contentType: "application/json",
			body:        `{"from": "+15550001111", "text": "Hi, my name is Jane Doe"}`,
			want:        InboundMessage{Identity: "+15550001111", Text: "Hi, my name is Jane Doe"},
		},
		{
			name:        "nested json with phone object",
			contentType: "application/json; charset=utf-8",
			body:        `{"data": {"payload": {}, "from": {"phoneNumber": "+1 (555) 000-1111"}, "text": "  need brakes  "}}`,
			want:        InboundMessage{Identity: "+15550001111", Text: "need brakes"},
		},
		{
			name:        "json without content type",
			contentType: "",
			body:        `{"sender": "15550001111", "message": "hello"}`,
			want:        InboundMessage{Identity: "+15550001111", Text: "hello"},
		},
		{
			name:        "nested message object with a number field",
			contentType: "application/json",
			body:        `{"from":"+15550001111","message":{"text":"I need brakes","number":"+15559998888"}}`,
			want:        InboundMessage{Identity: "+15550001111", Text: "I need brakes"},
		},
		{
			name:        "number field is never read as text",
			contentType: "application/json",
			body:        `{"from":"+15550001111","data":{"number":"+15559998888"}}`,
			want:        InboundMessage{Identity: "+15550001111"},
		},
		{
			name:        "twilio style form",
			contentType: "application/x-www-form-urlencoded",
			body:        "From=whatsapp%3A%2B15550001111&Body=Oil+change+please",
			want:        InboundMessage{Identity: "+15550001111", Text: "Oil change please"},
		},
		{
			name:        "line oriented",
			contentType: "text/plain",
			body:        "From: +15550001111\nBody: 2019 Honda Civic",
			want:        InboundMessage{Identity: "+15550001111", Text: "2019 Honda Civic"},
		},
		{
			name:        "invalid json",
			contentType: "application/json",
			body:        `{"from": `,
			want:        InboundMessage{},
		},
		{
			name:        "empty body",
			contentType: "application/json",
			body:        "   ",
			want:        InboundMessage{},
		},
		{
			name:        "missing text",
			contentType: "application/json",
			body:        `{"from": "+15550001111"}`,
			want:        InboundMessage{Identity: "+15550001111"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseInbound(tt.contentType, []byte(tt.body))
			if got != tt.want {
				t.Errorf("ParseInbound() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestNormalizeIdentity(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "+15550001111", want: "+15550001111"},
		{in: " +1 555-000-1111 ", want: "+15550001111"},
		{in: "whatsapp:+15550001111", want: "+15550001111"},
		{in: "15550001111", want: "+15550001111"},
		{in: "SMS:15550001111", want: "+15550001111"},
		{in: "tel:(555) 000.1111", want: "+5550001111"},
		{in: "user@example.com", want: "user@example.com"},
		{in: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := NormalizeIdentity(tt.in); got != tt.want {
				t.Errorf("NormalizeIdentity(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
