package dashboard

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/chrissnell/bikeshare/internal/types"
)

// Locale selects the language of labels and narrative text.
type Locale string

const (
	LocaleEnglish    Locale = "en"
	LocaleIndonesian Locale = "id"
)

// ParseLocale accepts "en" or "id"; the empty string means English.
func ParseLocale(s string) (Locale, error) {
	switch Locale(strings.ToLower(strings.TrimSpace(s))) {
	case "", LocaleEnglish:
		return LocaleEnglish, nil
	case LocaleIndonesian:
		return LocaleIndonesian, nil
	}
	return "", fmt.Errorf("unsupported locale %q", s)
}

type catalog struct {
	title  string
	intro  string
	footer string

	allSeasons string
	allWeather string
	seasons    map[types.Season]string
	weather    map[types.Weather]string
	months     [12]string
	weekend    string
	weekday    string

	date       string
	riders     string
	meanRiders string
	season     string
	condition  string

	dailyHeading   string
	dailyTitle     string
	dailyInsight   string
	seasonHeading  string
	seasonTitle    string
	seasonInsight  string
	weatherHeading string
	weatherTitle   string
	weatherInsight string
	splitHeading   string
	splitTitle     string
	splitInsight   string
	trendHeading   string
	trendTitle     string
	trendInsight   string

	// analysis question and conclusion shown under the panel that answers it
	findings map[PanelID]finding

	// format strings
	topCategory  string
	splitHigher  string
	summary      string
	busiestMonth string
	windowNote   string

	noData        string
	noDataInRange string

	intFormat   string
	floatFormat string
}

type finding struct {
	question   string
	conclusion string
}

func (c *catalog) seasonLabel(s types.Season) string {
	if s == types.SeasonAll {
		return c.allSeasons
	}
	return c.seasons[s]
}

func (c *catalog) weatherLabel(w types.Weather) string {
	if w == types.WeatherAll {
		return c.allWeather
	}
	return c.weather[w]
}

func (c *catalog) monthLabel(m time.Month) string {
	return c.months[m-1]
}

func (c *catalog) integer(n int) string {
	return humanize.FormatInteger(c.intFormat, n)
}

func (c *catalog) decimal(f float64) string {
	return humanize.FormatFloat(c.floatFormat, f)
}

func (c *catalog) day(t time.Time) string {
	return fmt.Sprintf("%d %s %d", t.Day(), c.monthLabel(t.Month()), t.Year())
}

var catalogs = map[Locale]*catalog{
	LocaleEnglish: {
		title:  "Bike Sharing Usage Analysis",
		intro:  "This dashboard shows bike-sharing usage by seasonal trend, weather condition and weekend riding patterns.",
		footer: "Bike sharing usage dashboard",

		allSeasons: "All Seasons",
		allWeather: "All Weather Conditions",
		seasons: map[types.Season]string{
			types.SeasonWinter: "Winter",
			types.SeasonSpring: "Spring",
			types.SeasonSummer: "Summer",
			types.SeasonFall:   "Fall",
		},
		weather: map[types.Weather]string{
			types.WeatherClear:       "Clear/Partly Cloudy",
			types.WeatherCloudy:      "Cloudy/Overcast",
			types.WeatherLightPrecip: "Light Rain/Snow",
		},
		months: [12]string{"January", "February", "March", "April", "May", "June",
			"July", "August", "September", "October", "November", "December"},
		weekend: "Weekend",
		weekday: "Weekday",

		date:       "Date",
		riders:     "Riders",
		meanRiders: "Mean riders per day",
		season:     "Season",
		condition:  "Weather condition",

		dailyHeading:   "Daily ridership over the selected range",
		dailyTitle:     "Daily Bike Sharing Riders",
		dailyInsight:   "Ridership is strongly shaped by season and weather. Summer and fall days carry more riders than winter days.",
		seasonHeading:  "Ridership by season",
		seasonTitle:    "Mean Riders per Season",
		seasonInsight:  "Mean daily ridership follows the seasons, peaking in the warm months and dropping in winter.",
		weatherHeading: "Ridership by weather condition",
		weatherTitle:   "Mean Riders by Weather Condition",
		weatherInsight: "Clear weather brings more riders, while rain and snow keep them at home.",
		splitHeading:   "Weekend and weekday usage",
		splitTitle:     "Mean Riders: Weekend vs Weekday",
		splitInsight:   "Weekend and weekday means are compared over the last six months of the selection.",
		trendHeading:   "Weekend ridership trend",
		trendTitle:     "Weekend Riders (Last Six Months)",
		trendInsight:   "Weekend ridership rises in months with good weather.",

		findings: map[PanelID]finding{
			PanelSeason: {
				question:   "What does mean daily ridership look like across the year? (seasonal trend)",
				conclusion: "Bike usage is strongly driven by the season, peaking in the months with warm weather.",
			},
			PanelWeather: {
				question:   "How is mean daily ridership distributed across weather conditions?",
				conclusion: "Clear weather drives higher bike usage, while bad weather holds riders back.",
			},
			PanelWeekSplit: {
				question:   "What does weekend riding look like over the last six months?",
				conclusion: "Weekend usage is higher than weekday usage, especially in months with good weather.",
			},
		},

		topCategory:  "%s leads with %s riders per day on average.",
		splitHigher:  "%s days average %s riders against %s for %s days.",
		summary:      "%s days selected, %s riders in total, %s riders per day on average.",
		busiestMonth: "Busiest month: %s (%s riders per day).",
		windowNote:   "Window: %s to %s.",

		noData:        "No data for this selection",
		noDataInRange: "No data in range: the start date is after the end date",

		intFormat:   "#,###.",
		floatFormat: "#,###.#",
	},
	LocaleIndonesian: {
		title:  "Analisis Penggunaan Sepeda (Bike Sharing)",
		intro:  "Dasbor ini menampilkan penggunaan sepeda berdasarkan tren musiman, kondisi cuaca dan pola penggunaan pada akhir pekan.",
		footer: "Dasbor penggunaan sepeda",

		allSeasons: "Semua Musim",
		allWeather: "Semua Kondisi Cuaca",
		seasons: map[types.Season]string{
			types.SeasonWinter: "Musim Salju",
			types.SeasonSpring: "Musim Semi",
			types.SeasonSummer: "Musim Panas",
			types.SeasonFall:   "Musim Gugur",
		},
		weather: map[types.Weather]string{
			types.WeatherClear:       "Cerah/Sedikit Berawan",
			types.WeatherCloudy:      "Berawan/Mendung",
			types.WeatherLightPrecip: "Hujan/Salju Ringan",
		},
		months: [12]string{"Januari", "Februari", "Maret", "April", "Mei", "Juni",
			"Juli", "Agustus", "September", "Oktober", "November", "Desember"},
		weekend: "Weekend",
		weekday: "Weekday",

		date:       "Tanggal",
		riders:     "Jumlah Pengguna Sepeda",
		meanRiders: "Rata-rata Jumlah Pengguna",
		season:     "Musim",
		condition:  "Kondisi Cuaca",

		dailyHeading:   "Tren pengguna sepeda harian berdasarkan rentang waktu",
		dailyTitle:     "Tren Pengguna Sepeda Harian",
		dailyInsight:   "Penggunaan sepeda sangat dipengaruhi oleh musim dan cuaca. Musim panas dan gugur memiliki lebih banyak pengguna dibandingkan musim salju.",
		seasonHeading:  "Distribusi pengguna sepeda berdasarkan musim",
		seasonTitle:    "Rata-rata Pengguna Sepeda per Musim",
		seasonInsight:  "Rata-rata pengguna harian mengikuti musim, memuncak pada bulan-bulan hangat dan turun pada musim salju.",
		weatherHeading: "Distribusi pengguna sepeda berdasarkan kondisi cuaca",
		weatherTitle:   "Rata-rata Pengguna Sepeda per Kondisi Cuaca",
		weatherInsight: "Cuaca cerah mendorong penggunaan sepeda yang lebih tinggi, sementara cuaca buruk menjadi penghalang.",
		splitHeading:   "Penggunaan sepeda pada weekday dan weekend",
		splitTitle:     "Rata-rata Penggunaan Sepeda: Weekend vs Weekday",
		splitInsight:   "Rata-rata weekend dan weekday dibandingkan selama enam bulan terakhir dari pilihan.",
		trendHeading:   "Tren penggunaan sepeda pada weekend",
		trendTitle:     "Penggunaan Sepeda pada Weekend (Enam Bulan Terakhir)",
		trendInsight:   "Penggunaan sepeda pada weekend meningkat pada bulan-bulan dengan cuaca yang baik.",

		findings: map[PanelID]finding{
			PanelSeason: {
				question:   "Bagaimana pola rata-rata pengguna sepeda per hari dalam setahun terakhir? (Tren musiman)",
				conclusion: "Penggunaan sepeda sangat dipengaruhi oleh musim, dengan puncak penggunaan pada bulan-bulan dengan cuaca hangat.",
			},
			PanelWeather: {
				question:   "Bagaimana distribusi rata-rata pengguna sepeda berdasarkan kondisi cuaca yang berbeda?",
				conclusion: "Kondisi cuaca cerah mendorong penggunaan sepeda yang lebih tinggi, sementara cuaca buruk menjadi penghalang.",
			},
			PanelWeekSplit: {
				question:   "Bagaimana pola penggunaan sepeda pada akhir pekan dalam enam bulan terakhir?",
				conclusion: "Penggunaan sepeda pada hari weekend lebih tinggi dibandingkan hari weekday, terutama pada bulan-bulan dengan cuaca yang baik.",
			},
		},

		topCategory:  "%s tertinggi dengan rata-rata %s pengguna per hari.",
		splitHigher:  "Hari %s rata-rata %s pengguna, dibandingkan %s pada hari %s.",
		summary:      "%s hari dipilih, total %s pengguna, rata-rata %s pengguna per hari.",
		busiestMonth: "Bulan tersibuk: %s (%s pengguna per hari).",
		windowNote:   "Rentang: %s sampai %s.",

		noData:        "Tidak ada data untuk pilihan ini",
		noDataInRange: "Tidak ada data: tanggal mulai setelah tanggal akhir",

		intFormat:   "#.###,",
		floatFormat: "#.###,#",
	},
}
