package types

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Season is the closed enumeration of season codes found in the dataset.
// The zero value means "all seasons" when used as a filter.
type Season uint8

const (
	SeasonAll Season = iota
	SeasonWinter
	SeasonSpring
	SeasonSummer
	SeasonFall
)

// Seasons lists every concrete season in enumeration order.
var Seasons = []Season{SeasonWinter, SeasonSpring, SeasonSummer, SeasonFall}

var seasonNames = map[Season]string{
	SeasonAll:    "all",
	SeasonWinter: "winter",
	SeasonSpring: "spring",
	SeasonSummer: "summer",
	SeasonFall:   "fall",
}

var seasonLabels = map[Season]string{
	SeasonAll:    "All Seasons",
	SeasonWinter: "Winter",
	SeasonSpring: "Spring",
	SeasonSummer: "Summer",
	SeasonFall:   "Fall",
}

// SeasonFromCode maps a dataset season code (1-4) onto the enumeration.
func SeasonFromCode(code int) (Season, error) {
	if code < int(SeasonWinter) || code > int(SeasonFall) {
		return SeasonAll, fmt.Errorf("season code %d out of range 1-4", code)
	}
	return Season(code), nil
}

// ParseSeason accepts a selector value: "all", a season name, or a code.
// The empty string is treated as "all".
func ParseSeason(s string) (Season, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return SeasonAll, nil
	}
	if code, err := strconv.Atoi(s); err == nil {
		return SeasonFromCode(code)
	}
	for season, name := range seasonNames {
		if name == s {
			return season, nil
		}
	}
	return SeasonAll, fmt.Errorf("unknown season %q", s)
}

// Code returns the dataset code for the season.
func (s Season) Code() int { return int(s) }

// Name returns the lowercase selector value.
func (s Season) Name() string { return seasonNames[s] }

func (s Season) String() string {
	if l, ok := seasonLabels[s]; ok {
		return l
	}
	return fmt.Sprintf("Season(%d)", uint8(s))
}

// Weather is the closed enumeration of weather situation codes (weathersit).
// The zero value means "all conditions" when used as a filter.
type Weather uint8

const (
	WeatherAll Weather = iota
	WeatherClear
	WeatherCloudy
	WeatherLightPrecip
)

// WeatherConditions lists every concrete weather condition in enumeration order.
var WeatherConditions = []Weather{WeatherClear, WeatherCloudy, WeatherLightPrecip}

var weatherNames = map[Weather]string{
	WeatherAll:         "all",
	WeatherClear:       "clear",
	WeatherCloudy:      "cloudy",
	WeatherLightPrecip: "rain",
}

var weatherLabels = map[Weather]string{
	WeatherAll:         "All Conditions",
	WeatherClear:       "Clear/Partly Cloudy",
	WeatherCloudy:      "Cloudy/Overcast",
	WeatherLightPrecip: "Light Rain/Snow",
}

// WeatherFromCode maps a dataset weathersit code (1-3) onto the enumeration.
func WeatherFromCode(code int) (Weather, error) {
	if code < int(WeatherClear) || code > int(WeatherLightPrecip) {
		return WeatherAll, fmt.Errorf("weather code %d out of range 1-3", code)
	}
	return Weather(code), nil
}

// ParseWeather accepts "all", a condition name ("clear", "cloudy", "rain"
// or "snow"), or a code. The empty string is treated as "all".
func ParseWeather(s string) (Weather, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "":
		return WeatherAll, nil
	case "snow":
		return WeatherLightPrecip, nil
	}
	if code, err := strconv.Atoi(s); err == nil {
		return WeatherFromCode(code)
	}
	for w, name := range weatherNames {
		if name == s {
			return w, nil
		}
	}
	return WeatherAll, fmt.Errorf("unknown weather condition %q", s)
}

func (w Weather) Code() int { return int(w) }

func (w Weather) Name() string { return weatherNames[w] }

func (w Weather) String() string {
	if l, ok := weatherLabels[w]; ok {
		return l
	}
	return fmt.Sprintf("Weather(%d)", uint8(w))
}

// Record is one day of bike-sharing usage.
type Record struct {
	Date    time.Time  `json:"date"`
	Month   time.Month `json:"month"`
	Season  Season     `json:"season"`
	Weather Weather    `json:"weather"`
	Weekday int        `json:"weekday"`
	Count   int        `json:"count"`
}

// IsWeekend reports whether the record falls in the weekend partition.
// The dataset encodes the weekend as weekday 5 and 6.
func (r Record) IsWeekend() bool {
	return r.Weekday == 5 || r.Weekday == 6
}

// DateOf truncates t to a UTC calendar date.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DateLayout is the layout used for dates on the wire and in query strings.
const DateLayout = "2006-01-02"
