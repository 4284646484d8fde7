package config

import (
	"errors"
	"os"
	"strconv"
	"time"

	"github.com/spacesedan/commentharvest/internal/timeutils"
)

const (
	DEFAULT_OUTPUT_FILE   = "comments.tsv"
	DEFAULT_MAX_SPAN_DAYS = 3
	DEFAULT_LANGUAGE      = "en"
)

// Config carries everything a run needs. It is assembled once in main and
// handed to the harvester; nothing downstream reads the process environment.
type Config struct {
	APIKey            string
	Timezone          *time.Location
	OutputFile        string
	MaxSpanDays       int
	RelevanceLanguage string
}

// FromEnv builds a Config from the process environment. The timezone is
// resolved once here; an empty HARVEST_TIMEZONE means the host local zone.
func FromEnv() (Config, error) {
	apiKey := os.Getenv("YOUTUBE_API_KEY")
	if apiKey == "" {
		return Config{}, errors.New("YOUTUBE_API_KEY is not set")
	}

	loc, err := timeutils.ResolveTimezone(os.Getenv("HARVEST_TIMEZONE"))
	if err != nil {
		return Config{}, err
	}

	outputFile := os.Getenv("OUTPUT_FILE")
	if outputFile == "" {
		outputFile = DEFAULT_OUTPUT_FILE
	}

	maxSpanDays, err := strconv.Atoi(os.Getenv("MAX_SPAN_DAYS"))
	if err != nil || maxSpanDays < 1 {
		maxSpanDays = DEFAULT_MAX_SPAN_DAYS
	}

	language := os.Getenv("RELEVANCE_LANGUAGE")
	if language == "" {
		language = DEFAULT_LANGUAGE
	}

	return Config{
		APIKey:            apiKey,
		Timezone:          loc,
		OutputFile:        outputFile,
		MaxSpanDays:       maxSpanDays,
		RelevanceLanguage: language,
	}, nil
}
