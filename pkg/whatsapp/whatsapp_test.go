package whatsapp

import "testing"

func TestRecipientJID(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "+15550001111", want: "15550001111@s.whatsapp.net"},
		{in: "+1 (555) 000-1111", want: "15550001111@s.whatsapp.net"},
		{in: "6281234567890", want: "6281234567890@s.whatsapp.net"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := recipientJID(tt.in).String(); got != tt.want {
				t.Errorf("recipientJID(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
