package domain

type Weather struct {
	City        string
	Description string
	Temperature float64
}

type Headline struct {
	Title  string
	Source string
	URL    string
}

type ExchangeRates struct {
	Base  string
	Rates map[string]float64
}

type Joke struct {
	Setup     string
	Punchline string
}

type Quote struct {
	Text   string
	Author string
}

type Movie struct {
	Title       string
	ReleaseDate string
}
