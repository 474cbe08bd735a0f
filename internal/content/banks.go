package content

import "quizrush/internal/domain"

func opts(a, b, c, d string) []domain.Option {
	return []domain.Option{
		{Key: "A", Text: a},
		{Key: "B", Text: b},
		{Key: "C", Text: c},
		{Key: "D", Text: d},
	}
}

// questionBank is the embedded quiz bank used when no database is configured
var questionBank = []domain.Question{
	// Science
	{ID: "q-sci-1", Category: "Science", Text: "Which planet has the most moons?", Options: opts("Earth", "Saturn", "Mars", "Venus"), CorrectKey: "B", Explanation: "Saturn passed Jupiter with 146 confirmed moons."},
	{ID: "q-sci-2", Category: "Science", Text: "What is the chemical symbol for gold?", Options: opts("Go", "Gd", "Au", "Ag"), CorrectKey: "C"},
	{ID: "q-sci-3", Category: "Science", Text: "What gas do plants absorb from the atmosphere?", Options: opts("Oxygen", "Nitrogen", "Hydrogen", "Carbon dioxide"), CorrectKey: "D"},
	{ID: "q-sci-4", Category: "Science", Text: "How many bones does an adult human body have?", Options: opts("186", "206", "226", "246"), CorrectKey: "B"},

	// History
	{ID: "q-his-1", Category: "History", Text: "In which year did the Berlin Wall fall?", Options: opts("1987", "1989", "1991", "1993"), CorrectKey: "B"},
	{ID: "q-his-2", Category: "History", Text: "Who was the first person to walk on the Moon?", Options: opts("Buzz Aldrin", "Yuri Gagarin", "Neil Armstrong", "John Glenn"), CorrectKey: "C"},
	{ID: "q-his-3", Category: "History", Text: "The Rosetta Stone helped decipher which script?", Options: opts("Cuneiform", "Egyptian hieroglyphs", "Linear B", "Runes"), CorrectKey: "B"},
	{ID: "q-his-4", Category: "History", Text: "Which empire built Machu Picchu?", Options: opts("Aztec", "Maya", "Inca", "Olmec"), CorrectKey: "C"},

	// Geography
	{ID: "q-geo-1", Category: "Geography", Text: "What is the longest river in the world?", Options: opts("Amazon", "Nile", "Yangtze", "Mississippi"), CorrectKey: "B", Explanation: "By most measurements the Nile edges out the Amazon."},
	{ID: "q-geo-2", Category: "Geography", Text: "Which country has the most time zones?", Options: opts("Russia", "USA", "France", "China"), CorrectKey: "C", Explanation: "France spans 12 time zones thanks to overseas territories."},
	{ID: "q-geo-3", Category: "Geography", Text: "What is the capital of Australia?", Options: opts("Sydney", "Melbourne", "Canberra", "Perth"), CorrectKey: "C"},
	{ID: "q-geo-4", Category: "Geography", Text: "Which desert is the largest in the world?", Options: opts("Sahara", "Gobi", "Kalahari", "Antarctic"), CorrectKey: "D", Explanation: "Antarctica is technically a polar desert."},

	// Movies
	{ID: "q-mov-1", Category: "Movies", Text: "Who directed the movie Jaws?", Options: opts("George Lucas", "Steven Spielberg", "Martin Scorsese", "Francis Ford Coppola"), CorrectKey: "B"},
	{ID: "q-mov-2", Category: "Movies", Text: "Which film won the first Academy Award for Best Picture?", Options: opts("Wings", "Sunrise", "Metropolis", "The Jazz Singer"), CorrectKey: "A"},
	{ID: "q-mov-3", Category: "Movies", Text: "In The Matrix, which pill does Neo take?", Options: opts("Blue", "Green", "Red", "Yellow"), CorrectKey: "C"},
	{ID: "q-mov-4", Category: "Movies", Text: "What is the highest-grossing film of all time (unadjusted)?", Options: opts("Titanic", "Avatar", "Avengers: Endgame", "Star Wars: The Force Awakens"), CorrectKey: "B"},

	// Music
	{ID: "q-mus-1", Category: "Music", Text: "How many strings does a standard violin have?", Options: opts("4", "5", "6", "7"), CorrectKey: "A"},
	{ID: "q-mus-2", Category: "Music", Text: "Which band recorded the album Abbey Road?", Options: opts("The Rolling Stones", "The Who", "The Beatles", "The Kinks"), CorrectKey: "C"},
	{ID: "q-mus-3", Category: "Music", Text: "What does 'forte' mean in sheet music?", Options: opts("Slow", "Loud", "Soft", "Fast"), CorrectKey: "B"},
	{ID: "q-mus-4", Category: "Music", Text: "Which composer became deaf later in life?", Options: opts("Mozart", "Bach", "Chopin", "Beethoven"), CorrectKey: "D"},

	// Food
	{ID: "q-foo-1", Category: "Food", Text: "Which country invented the croissant?", Options: opts("France", "Austria", "Belgium", "Italy"), CorrectKey: "B", Explanation: "The kipferl, the croissant's ancestor, comes from Vienna."},
	{ID: "q-foo-2", Category: "Food", Text: "What is the main ingredient of guacamole?", Options: opts("Tomato", "Pea", "Avocado", "Lime"), CorrectKey: "C"},
	{ID: "q-foo-3", Category: "Food", Text: "Which spice is the most expensive by weight?", Options: opts("Vanilla", "Saffron", "Cardamom", "Truffle salt"), CorrectKey: "B"},
	{ID: "q-foo-4", Category: "Food", Text: "Sushi rice is seasoned with what?", Options: opts("Soy sauce", "Mirin", "Rice vinegar", "Sake"), CorrectKey: "C"},
}

// wordBank contains obscure words with one real definition each
var wordBank = []domain.DictionaryWord{
	{ID: "w-1", Word: "petrichor", Definitions: opts("The smell of earth after rain", "A fossilized tree resin", "Fear of heights", "A medieval siege engine"), CorrectKey: "A"},
	{ID: "w-2", Word: "borborygmus", Definitions: opts("A type of volcanic rock", "A rumbling of the stomach", "An ancient Greek dance", "A double star system"), CorrectKey: "B"},
	{ID: "w-3", Word: "zugzwang", Definitions: opts("A German pastry", "A train switching yard", "A position where any move worsens your situation", "The urge to travel"), CorrectKey: "C"},
	{ID: "w-4", Word: "apricity", Definitions: opts("The warmth of the sun in winter", "A fear of apricots", "Excessive politeness", "The first frost of autumn"), CorrectKey: "A"},
	{ID: "w-5", Word: "defenestration", Definitions: opts("Removing window shutters", "The act of throwing someone out of a window", "A loss of nerve", "Clearing a forest"), CorrectKey: "B"},
	{ID: "w-6", Word: "sesquipedalian", Definitions: opts("Having six legs", "A unit of Roman distance", "Relating to horse riding", "Given to using long words"), CorrectKey: "D"},
	{ID: "w-7", Word: "ultracrepidarian", Definitions: opts("One who opines beyond their expertise", "An extremely fast walker", "A species of deep-sea fish", "A shoe larger than size 50"), CorrectKey: "A"},
	{ID: "w-8", Word: "mumpsimus", Definitions: opts("A childhood disease", "A stubborn adherence to an obvious error", "A ceremonial hat", "A small rodent"), CorrectKey: "B"},
}

// promptBank contains "rank your friends" style voting prompts
var promptBank = []domain.RankingPrompt{
	{ID: "p-1", Text: "Who would survive longest in a zombie apocalypse?"},
	{ID: "p-2", Text: "Who is most likely to become famous?"},
	{ID: "p-3", Text: "Who would forget their own birthday?"},
	{ID: "p-4", Text: "Who gives the best advice?"},
	{ID: "p-5", Text: "Who is most likely to text back within a minute?"},
	{ID: "p-6", Text: "Who would accidentally join a cult?"},
	{ID: "p-7", Text: "Who is most likely to win a cooking show?"},
	{ID: "p-8", Text: "Who would spend their last money on something ridiculous?"},
	{ID: "p-9", Text: "Who is the best person to call at 3 AM?"},
	{ID: "p-10", Text: "Who is most likely to sleep through an earthquake?"},
}
