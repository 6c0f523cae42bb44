package enrichment

import (
	"github.com/mssola/user_agent"
)

type UAInfo struct {
	Browser    string
	OS         string
	DeviceType string
}

// ParseUserAgent classifies a User-Agent header for auth audit events.
// An empty header yields an empty UAInfo.
func ParseUserAgent(uaString string) *UAInfo {
	if uaString == "" {
		return &UAInfo{}
	}

	ua := user_agent.New(uaString)

	browser, _ := ua.Browser()
	deviceType := "desktop"

	if ua.Bot() {
		deviceType = "bot"
	} else if ua.Mobile() {
		deviceType = "mobile"
	}

	return &UAInfo{
		Browser:    browser,
		OS:         ua.OS(),
		DeviceType: deviceType,
	}
}
