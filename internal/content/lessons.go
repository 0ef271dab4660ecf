package content

import "github.com/eslsoft/lingoguru/internal/entity"

func greetings() *entity.Lesson {
	return &entity.Lesson{
		ID:          "1",
		Title:       bi("Greetings & Introductions", "ಶುಭಾಶಯಗಳು ಮತ್ತು ಪರಿಚಯ"),
		Level:       entity.LevelA1,
		Description: bi("Learn how to say hello and introduce yourself in German.", "ಜರ್ಮನ್ ಭಾಷೆಯಲ್ಲಿ ಹಲೋ ಹೇಳುವುದು ಮತ್ತು ನಿಮ್ಮನ್ನು ಪರಿಚಯಿಸಿಕೊಳ್ಳುವುದನ್ನು ಕಲಿಯಿರಿ."),
		Vocabulary: []entity.VocabularyItem{
			word("Hallo", "Hello", "ಹಲೋ / ನಮಸ್ಕಾರ", "hah-loh"),
			word("Guten Tag", "Good day", "ಶುಭ ದಿನ", "goo-ten tahk"),
			word("Wie geht es dir?", "How are you?", "ನೀವು ಹೇಗಿದ್ದೀರಿ?", "vee gayt es deer"),
			word("Ich heiße...", "My name is...", "ನನ್ನ ಹೆಸರು...", "ikh hy-suh"),
			word("Tschüss", "Bye", "ಬೈ / ಹೋಗಿ ಬರುತ್ತೇನೆ", "tchuess"),
			word("Freut mich", "Nice to meet you", "ನಿಮ್ಮನ್ನು ಭೇಟಿಯಾಗಿದ್ದಕ್ಕೆ ಸಂತೋಷ", "froyt mikh"),
			word("Auf Wiedersehen", "Goodbye (Formal)", "ವಿದಾಯ", "owf vee-der-zayn"),
		},
		Quiz: []entity.QuizQuestion{
			{
				ID:            "q1-1",
				Prompt:        bi(`What is the German word for "Hello"?`, `"ಹಲೋ" ಗೆ ಜರ್ಮನ್ ಪದ ಯಾವುದು?`),
				Options:       []string{"Tschüss", "Hallo", "Guten Tag", "Ja"},
				CorrectAnswer: "Hallo",
				Explanation:   bi(`"Hallo" is the informal way to say Hello in German.`, `"Hallo" ಎಂಬುದು ಜರ್ಮನ್‌ನಲ್ಲಿ ಹಲೋ ಎಂದು ಹೇಳುವ ಅನೌಪಚಾರಿಕ ವಿಧಾನವಾಗಿದೆ.`),
			},
			{
				ID:            "q1-2",
				Prompt:        bi(`How do you say "My name is..." in German?`, `ಜರ್ಮನ್‌ನಲ್ಲಿ "ನನ್ನ ಹೆಸರು..." ಎಂದು ಹೇಗೆ ಹೇಳುತ್ತೀರಿ?`),
				Options:       []string{"Ich heiße...", "Wie geht es dir?", "Danke", "Bitte"},
				CorrectAnswer: "Ich heiße...",
				Explanation:   bi(`"Ich heiße" literally means "I am called".`, `"Ich heiße" ಎಂದರೆ "ನನ್ನನ್ನು ಕರೆಯಲಾಗುತ್ತದೆ" ಎಂದು ಅರ್ಥ.`),
			},
			{
				ID:            "q1-3",
				Prompt:        bi("Which is a formal way to say Goodbye?", "ವಿದಾಯ ಹೇಳಲು ಔಪಚಾರಿಕ ಮಾರ್ಗ ಯಾವುದು?"),
				Options:       []string{"Tschüss", "Auf Wiedersehen", "Hallo", "Freut mich"},
				CorrectAnswer: "Auf Wiedersehen",
				Explanation:   bi("Auf Wiedersehen is the polite way to say goodbye.", "Auf Wiedersehen ಎನ್ನುವುದು ವಿದಾಯ ಹೇಳುವ ಸುಸಂಸ್ಕೃತ ಮಾರ್ಗವಾಗಿದೆ."),
			},
		},
		Dialogue: dialogue("start",
			node("start", say("Hallo! Wie geht es dir?", "Hello! How are you?", "ಹಲೋ! ನೀವು ಹೇಗಿದ್ದೀರಿ?"),
				reply(say("Mir geht es gut, danke.", "I am doing well, thanks.", "ನಾನು ಚೆನ್ನಾಗಿದ್ದೇನೆ, ಧನ್ಯವಾದಗಳು."), "node2"),
				reply(say("Nicht so gut.", "Not so good.", "ಅಷ್ಟೊಂದು ಚೆನ್ನಾಗಿಲ್ಲ."), "node3"),
			),
			node("node2", say("Das freut mich! Wie heißt du?", "I am happy to hear that! what is your name?", "ಅದನ್ನು ಕೇಳಿ ಸಂತೋಷವಾಯಿತು! ನಿಮ್ಮ ಹೆಸರೇನು?"),
				reply(say("Ich heiße Student.", "My name is Student.", "ನನ್ನ ಹೆಸರು ವಿದ್ಯಾರ್ಥಿ."), "end"),
			),
			node("node3", say("Oh, das tut mir leid. Kann ich helfen?", "Oh, I am sorry. Can I help?", "ಓಹ್, ಕ್ಷಮಿಸಿ. ನಾನು ಸಹಾಯ ಮಾಡಬಹುದೇ?"),
				reply(say("Ja, bitte.", "Yes, please.", "ಹೌದು, ದಯವಿಟ್ಟು."), "end"),
				reply(say("Nein, danke.", "No, thanks.", "ಇಲ್ಲ, ಧನ್ಯವಾದಗಳು."), "end"),
			),
			node("end", say("Schön dich kennenzulernen! Tschüss!", "Nice to meet you! Bye!", "ನಿಮ್ಮನ್ನು ಭೇಟಿಯಾಗಿದ್ದಕ್ಕೆ ಸಂತೋಷ! ಹೋಗಿ ಬರುತ್ತೇನೆ!")),
		),
	}
}

func numbers() *entity.Lesson {
	return &entity.Lesson{
		ID:          "2",
		Title:       bi("Numbers (1-10)", "ಸಂಖ್ಯೆಗಳು (೧-೧೦)"),
		Level:       entity.LevelA1,
		Description: bi("Master the basic numbers for daily counting.", "ದೈನಂದಿನ ಎಣಿಕೆಗಾಗಿ ಮೂಲ ಸಂಖ್ಯೆಗಳನ್ನು ಕಲಿಯಿರಿ."),
		Vocabulary: []entity.VocabularyItem{
			word("Eins", "One", "ಒಂದು", "eyns"),
			word("Zwei", "Two", "ಎರಡು", "tsvay"),
			word("Drei", "Three", "ಮೂರು", "dry"),
			word("Vier", "Four", "ನಾಲ್ಕು", "fyeer"),
			word("Fünf", "Five", "ಐದು", "fuenf"),
			word("Sechs", "Six", "ಆರು", "zeks"),
			word("Sieben", "Seven", "ಏಳು", "zee-ben"),
			word("Acht", "Eight", "ಎಂಟು", "akht"),
			word("Neun", "Nine", "ಒಂಬತ್ತು", "noyn"),
			word("Zehn", "Ten", "ಹತ್ತು", "tsayn"),
		},
		Quiz: []entity.QuizQuestion{
			{
				ID:            "q2-1",
				Prompt:        bi(`What is the German word for "Three"?`, `"ಮೂರು" ಗೆ ಜರ್ಮನ್ ಪದ ಯಾವುದು?`),
				Options:       []string{"Eins", "Zwei", "Drei", "Vier"},
				CorrectAnswer: "Drei",
				Explanation:   bi("Drei is the German word for 3.", "Drei ಎಂಬುದು 3 ಕ್ಕ್ಕೆ ಜರ್ಮನ್ ಪದವಾಗಿದೆ."),
			},
			{
				ID:            "q2-2",
				Prompt:        bi(`Which number is "Acht"?`, `"Acht" ಯಾವ ಸಂಖ್ಯೆ?`),
				Options:       []string{"6", "7", "8", "9"},
				CorrectAnswer: "8",
				Explanation:   bi("Acht corresponds to number 8.", "Acht ಎನ್ನುವುದು ಸಂಖ್ಯೆ 8 ಕ್ಕೆ ಸಮಾನವಾಗಿದೆ."),
			},
		},
		Dialogue: dialogue("start",
			node("start", say("Wie viele Äpfel hast du?", "How many apples do you have?", "ನಿಮ್ಮ ಬಳಿ ಎಷ್ಟು ಸೇಬುಗಳಿವೆ?"),
				reply(say("Ich habe eins.", "I have one.", "ನನ್ನ ಬಳಿ ಒಂದು ಇದೆ."), "node2"),
				reply(say("Ich habe zwei.", "I have two.", "ನನ್ನ ಬಳಿ ಎರಡು ಇವೆ."), "node2"),
			),
			node("node2", say("Möchtest du noch eins?", "Would you like another one?", "ನಿಮಗೆ ಇನ್ನೊಂದು ಬೇಕೇ?"),
				reply(say("Ja, gerne!", "Yes, gladly!", "ಹೌದು, ಸಂತೋಷದಿಂದ!"), "end"),
				reply(say("Nein, danke.", "No, thanks.", "ಇಲ್ಲ, ಧನ್ಯವಾದಗಳು."), "end"),
			),
			node("end", say("Alles klar! Bis bald.", "All right! See you soon.", "ಸರಿ! ಶೀಘ್ರದಲ್ಲೇ ಭೇಟಿಯಾಗೋಣ.")),
		),
	}
}

func phrases() *entity.Lesson {
	return &entity.Lesson{
		ID:          "3",
		Title:       bi("Common Phrases", "ಸಾಮಾನ್ಯ ನುಡಿಗಟ್ಟುಗಳು"),
		Level:       entity.LevelA1,
		Description: bi("Essential phrases for everyday communication.", "ದೈನಂದಿನ ಸಂವಹನಕ್ಕೆ ಅಗತ್ಯವಾದ ನುಡಿಗಟ್ಟುಗಳು."),
		Vocabulary: []entity.VocabularyItem{
			word("Bitte", "Please / You're welcome", "ದಯವಿಟ್ಟು / ಸ್ವಾಗತ", "bit-tuh"),
			word("Danke", "Thank you", "ಧನ್ಯವಾದಗಳು", "dan-kuh"),
			word("Entschuldigung", "Excuse me / Sorry", "ಕ್ಷಮಿಸಿ", "ent-shool-dee-goong"),
			word("Ja", "Yes", "ಹೌದು", "yah"),
			word("Nein", "No", "ಇಲ್ಲ", "nine"),
			word("Kein Problem", "No problem", "ಏನೂ ತೊಂದರೆ ಇಲ್ಲ", "kayn pro-blaym"),
		},
		Quiz: []entity.QuizQuestion{
			{
				ID:            "q3-1",
				Prompt:        bi(`How do you say "Thank you" in German?`, `ಜರ್ಮನ್‌ನಲ್ಲಿ "ಧನ್ಯವಾದಗಳು" ಎಂದು ಹೇಗೆ ಹೇಳುತ್ತೀರಿ?`),
				Options:       []string{"Bitte", "Danke", "Ja", "Nein"},
				CorrectAnswer: "Danke",
				Explanation:   bi(`"Danke" is the standard way to say Thank You.`, `"Danke" ಎಂಬುದು ಧನ್ಯವಾದಗಳು ಹೇಳಲು ಪ್ರಮಾಣಿತ ಮಾರ್ಗವಾಗಿದೆ.`),
			},
			{
				ID:            "q3-2",
				Prompt:        bi(`What does "Entschuldigung" mean?`, `"Entschuldigung" ಎಂದರೆ ಏನು?`),
				Options:       []string{"Yes", "No", "Excuse me", "Please"},
				CorrectAnswer: "Excuse me",
				Explanation:   bi("Entschuldigung is used to apologize or get attention.", "Entschuldigung ಎನ್ನುವುದನ್ನು ಕ್ಷಮೆ ಕೇಳಲು ಅಥವಾ ಗಮನ ಸೆಳೆಯಲು ಬಳಸಲಾಗುತ್ತದೆ."),
			},
		},
		Dialogue: dialogue("start",
			node("start", say("Entschuldigung, wo ist der Bahnhof?", "Excuse me, where is the train station?", "ಕ್ಷಮಿಸಿ, ರೈಲ್ವೆ ನಿಲ್ದಾಣ ಎಲ್ಲಿದೆ?"),
				reply(say("Geradeaus, bitte.", "Straight ahead, please.", "ನೇರವಾಗಿ ಹೋಗಿ, ದಯವಿಟ್ಟು."), "node2"),
			),
			node("node2", say("Vielen Dank für Ihre Hilfe!", "Thank you very much for your help!", "ನಿಮ್ಮ ಸಹಾಯಕ್ಕಾಗಿ ತುಂಬಾ ಧನ್ಯವಾದಗಳು!"),
				reply(say("Gern geschehen.", "You're welcome.", "ಸ್ವಾಗತ / ಪರವಾಗಿಲ್ಲ."), "end"),
			),
			node("end", say("Einen schönen Tag noch!", "Have a nice day!", "ನಿಮ್ಮ ದಿನ ಶುಭವಾಗಿರಲಿ!")),
		),
	}
}
