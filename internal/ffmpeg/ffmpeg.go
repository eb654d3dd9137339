// Package ffmpeg probes recitation audio so a timing table can be checked
// against the file it describes.
package ffmpeg

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"strconv"
)

// MediaInfo holds duration and codec information from ffprobe.
type MediaInfo struct {
	Duration float64
	Codec    string
}

// Available returns true if ffprobe is on the PATH.
func Available() bool {
	_, err := exec.LookPath("ffprobe")
	return err == nil
}

// probeOutput mirrors ffprobe JSON structure.
type probeOutput struct {
	Format struct {
		Duration string `json:"duration"`
	} `json:"format"`
	Streams []struct {
		CodecName string `json:"codec_name"`
	} `json:"streams"`
}

// ProbeMedia uses ffprobe to get media duration and audio codec.
func ProbeMedia(ctx context.Context, path string) (*MediaInfo, error) {
	if _, err := exec.LookPath("ffprobe"); err != nil {
		return nil, fmt.Errorf("ffprobe not found: %w", err)
	}

	cmd := exec.CommandContext(ctx,
		"ffprobe",
		"-v", "error",
		"-select_streams", "a:0",
		"-show_entries", "stream=codec_name:format=duration",
		"-of", "json",
		path,
	)

	out, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("ffprobe failed: %w", err)
	}
	return parseProbe(out)
}

func parseProbe(out []byte) (*MediaInfo, error) {
	var probe probeOutput
	if err := json.Unmarshal(out, &probe); err != nil {
		return nil, fmt.Errorf("ffprobe JSON parse error: %w", err)
	}

	dur, _ := strconv.ParseFloat(probe.Format.Duration, 64)

	codec := "N/A"
	if len(probe.Streams) > 0 && probe.Streams[0].CodecName != "" {
		codec = probe.Streams[0].CodecName
	}

	return &MediaInfo{Duration: dur, Codec: codec}, nil
}

// Coverage compares a timing table's extent with the audio it describes.
type Coverage struct {
	AudioDuration float64 // seconds
	TableEnd      float64 // seconds, end of the last verse
	Overrun       float64 // seconds the table extends past the audio, 0 if none
	Tail          float64 // seconds of audio after the last verse, 0 if none
}

// OK reports whether every verse lies within the audio, allowing tolerance
// seconds of overrun for encoder padding.
func (c Coverage) OK(tolerance float64) bool {
	return c.Overrun <= tolerance
}

// CheckCoverage measures how tableEnd relates to the probed duration.
func CheckCoverage(info *MediaInfo, tableEnd float64) Coverage {
	c := Coverage{AudioDuration: info.Duration, TableEnd: tableEnd}
	if d := tableEnd - info.Duration; d > 0 {
		c.Overrun = d
	} else {
		c.Tail = -d
	}
	return c
}

// LogMediaInfo logs file size and media information.
func LogMediaInfo(ctx context.Context, path string) *MediaInfo {
	stat, err := os.Stat(path)
	if err != nil {
		slog.Warn("cannot stat file", "path", path, "err", err)
		return nil
	}

	sizeMB := float64(stat.Size()) / (1024 * 1024)
	msg := fmt.Sprintf("file size: %.2f MB", sizeMB)

	info, err := ProbeMedia(ctx, path)
	if err == nil && info != nil {
		minutes := int(info.Duration) / 60
		seconds := int(info.Duration) % 60
		msg += fmt.Sprintf(" | duration: %02d:%02d | codec: %s", minutes, seconds, info.Codec)
	} else {
		slog.Debug("probe failed", "path", path, "err", err)
	}

	slog.Info(msg)
	return info
}
