package ai

import "testing"

func TestDecodeLinks_BareArray(t *testing.T) {
	links, err := decodeLinks(`[{"sourceId":"1","targetId":"2","label":"shared tooling","strength":0.5}]`)
	if err != nil {
		t.Fatalf("decodeLinks failed: %v", err)
	}
	if len(links) != 1 {
		t.Fatalf("expected 1 link, got %d", len(links))
	}
}

func TestDecodeLinks_MarkdownFences(t *testing.T) {
	raw := "```json\n[{\"sourceId\":\"1\",\"targetId\":\"2\",\"label\":\"x\",\"strength\":0.9}]\n```"
	links, err := decodeLinks(raw)
	if err != nil {
		t.Fatalf("decodeLinks failed: %v", err)
	}
	if len(links) != 1 {
		t.Errorf("expected fenced payload to decode, got %d links", len(links))
	}
}

func TestDecodeLinks_SurroundingProse(t *testing.T) {
	raw := `Here are the connections I found:
[{"sourceId":"1","targetId":"2","label":"x","strength":0.4}]
Hope this helps!`
	links, err := decodeLinks(raw)
	if err != nil {
		t.Fatalf("decodeLinks failed: %v", err)
	}
	if len(links) != 1 {
		t.Errorf("expected embedded array to decode, got %d links", len(links))
	}
}

func TestDecodeLinks_InvalidEntriesFilteredIndividually(t *testing.T) {
	raw := `[
		{"sourceId":"1","targetId":"2","label":"keep","strength":0.5},
		{"sourceId":"","targetId":"2","label":"missing source","strength":0.5},
		{"sourceId":"3","targetId":"3","label":"self link","strength":0.9},
		{"sourceId":"4","targetId":"5","label":"below floor","strength":0.29},
		{"sourceId":"6","targetId":"7","label":"out of range","strength":1.5}
	]`
	links, err := decodeLinks(raw)
	if err != nil {
		t.Fatalf("decodeLinks failed: %v", err)
	}
	if len(links) != 1 || links[0].Label != "keep" {
		t.Errorf("expected only the valid entry, got %+v", links)
	}
}

func TestDecodeLinks_NotJSON(t *testing.T) {
	if _, err := decodeLinks("no array here"); err == nil {
		t.Error("expected error for missing array")
	}
	if _, err := decodeLinks("[not json]"); err == nil {
		t.Error("expected error for malformed array")
	}
}

func TestDecodeLinks_StrengthBoundary(t *testing.T) {
	links, err := decodeLinks(`[{"sourceId":"1","targetId":"2","label":"x","strength":0.3}]`)
	if err != nil {
		t.Fatalf("decodeLinks failed: %v", err)
	}
	if len(links) != 1 {
		t.Error("strength exactly at the floor must be kept")
	}
}
