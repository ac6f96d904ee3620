package lead

import (
	"bufio"
	"bytes"
	"net/url"
	"regexp"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"golang.org/x/text/unicode/norm"
)

var (
	senderKeys  = []string{"from", "From", "sender", "phone", "phone_number", "msisdn"}
	bodyKeys    = []string{"body", "Body", "text", "message", "Message"}
	nestedKeys  = []string{"data", "payload", "message"}
	numberKeys  = []string{"phoneNumber", "phone_number", "number"}
	phoneLike   = regexp.MustCompile(`^\+?[\d\s().-]{7,}$`)
	nonDigit    = regexp.MustCompile(`\D`)
	schemeStrip = []string{"whatsapp:", "sms:", "tel:"}
)

// ParseInbound reduces a provider webhook payload to the normalised pair.
// Unresolvable payloads come back with empty fields; it never errors.
func ParseInbound(contentType string, body []byte) InboundMessage {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return InboundMessage{}
	}

	var msg InboundMessage
	switch {
	case strings.Contains(contentType, "json") || body[0] == '{':
		msg = parseJSON(body)
	case strings.Contains(contentType, "x-www-form-urlencoded"):
		msg = parseForm(body)
	default:
		msg = parseLines(body)
	}

	return NormalizeInbound(msg)
}

func NormalizeInbound(msg InboundMessage) InboundMessage {
	return InboundMessage{
		Identity: NormalizeIdentity(msg.Identity),
		Text:     strings.TrimSpace(norm.NFC.String(msg.Text)),
	}
}

// NormalizeIdentity strips channel prefixes and reduces phone numbers to a
// leading plus followed by digits, so "15550001111" and "+15550001111" share
// one session.
func NormalizeIdentity(raw string) string {
	id := strings.TrimSpace(norm.NFC.String(raw))
	lower := strings.ToLower(id)
	for _, prefix := range schemeStrip {
		if strings.HasPrefix(lower, prefix) {
			id = strings.TrimSpace(id[len(prefix):])
			break
		}
	}
	if !phoneLike.MatchString(id) {
		return id
	}
	return "+" + nonDigit.ReplaceAllString(id, "")
}

func parseJSON(body []byte) InboundMessage {
	var raw map[string]interface{}
	if err := jsoniter.Unmarshal(body, &raw); err != nil || raw == nil {
		return InboundMessage{}
	}

	msg := InboundMessage{
		Identity: lookupSender(raw),
		Text:     lookupText(raw),
	}
	for _, key := range nestedKeys {
		nested, ok := raw[key].(map[string]interface{})
		if !ok {
			continue
		}
		if msg.Identity == "" {
			msg.Identity = lookupSender(nested)
		}
		if msg.Text == "" {
			msg.Text = lookupText(nested)
		}
	}
	return msg
}

// lookupSender also accepts a sender object, e.g. {"from": {"phoneNumber": "+1555..."}}.
func lookupSender(m map[string]interface{}) string {
	for _, key := range senderKeys {
		switch v := m[key].(type) {
		case string:
			if strings.TrimSpace(v) != "" {
				return v
			}
		case map[string]interface{}:
			if s := lookupText(v, numberKeys...); s != "" {
				return s
			}
		}
	}
	return ""
}

// lookupText returns the first non-blank string under keys, bodyKeys by default.
// Nested objects are left to the caller.
func lookupText(m map[string]interface{}, keys ...string) string {
	if len(keys) == 0 {
		keys = bodyKeys
	}
	for _, key := range keys {
		if v, ok := m[key].(string); ok && strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

func parseForm(body []byte) InboundMessage {
	values, err := url.ParseQuery(string(body))
	if err != nil {
		return InboundMessage{}
	}
	var msg InboundMessage
	for _, key := range senderKeys {
		if v := values.Get(key); v != "" {
			msg.Identity = v
			break
		}
	}
	for _, key := range bodyKeys {
		if v := values.Get(key); v != "" {
			msg.Text = v
			break
		}
	}
	return msg
}

// parseLines reads "key: value" or "key=value" lines. Unknown keys are skipped.
func parseLines(body []byte) InboundMessage {
	var msg InboundMessage
	scanner := bufio.NewScanner(bytes.NewReader(body))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		idx := strings.IndexAny(line, ":=")
		if idx <= 0 {
			continue
		}
		key := strings.TrimSpace(line[:idx])
		value := strings.TrimSpace(line[idx+1:])
		if msg.Identity == "" && containsFold(senderKeys, key) {
			msg.Identity = value
		}
		if msg.Text == "" && containsFold(bodyKeys, key) {
			msg.Text = value
		}
	}
	return msg
}

func containsFold(keys []string, key string) bool {
	for _, k := range keys {
		if strings.EqualFold(k, key) {
			return true
		}
	}
	return false
}
