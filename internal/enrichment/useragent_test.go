package enrichment

import "testing"

func TestParseUserAgent_Desktop(t *testing.T) {
	info := ParseUserAgent("Mozilla/5.0 (X11; Linux x86_64; rv:109.0) Gecko/20100101 Firefox/115.0")

	if info.Browser != "Firefox" {
		t.Errorf("expected Firefox, got %q", info.Browser)
	}
	if info.DeviceType != "desktop" {
		t.Errorf("expected desktop, got %q", info.DeviceType)
	}
}

func TestParseUserAgent_Mobile(t *testing.T) {
	info := ParseUserAgent("Mozilla/5.0 (iPhone; CPU iPhone OS 16_0 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/16.0 Mobile/15E148 Safari/604.1")

	if info.DeviceType != "mobile" {
		t.Errorf("expected mobile, got %q", info.DeviceType)
	}
}

func TestParseUserAgent_Bot(t *testing.T) {
	info := ParseUserAgent("Mozilla/5.0 (compatible; Googlebot/2.1; +http://www.google.com/bot.html)")

	if info.DeviceType != "bot" {
		t.Errorf("expected bot, got %q", info.DeviceType)
	}
}

func TestParseUserAgent_Empty(t *testing.T) {
	info := ParseUserAgent("")

	if info.Browser != "" || info.DeviceType != "" {
		t.Errorf("expected empty info, got %+v", info)
	}
}
