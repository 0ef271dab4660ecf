// Package content holds the built-in curriculum: the static lessons and
// grammar topics every installation starts with.
package content

import (
	"time"

	"github.com/eslsoft/lingoguru/internal/entity"
)

// seededAt anchors static lessons ahead of anything generated at runtime.
var seededAt = time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)

func bi(en, kn string) entity.Bilingual {
	return entity.Bilingual{English: en, Kannada: kn}
}

func say(de, en, kn string) entity.Translation {
	return entity.Translation{German: de, English: en, Kannada: kn}
}

func word(de, en, kn, pron string) entity.VocabularyItem {
	return entity.VocabularyItem{German: de, English: en, Kannada: kn, Pronunciation: pron}
}

func reply(text entity.Translation, next string) entity.DialogueOption {
	return entity.DialogueOption{Text: text, NextNodeID: &next}
}

func node(id string, text entity.Translation, options ...entity.DialogueOption) entity.DialogueNode {
	return entity.DialogueNode{ID: id, Text: text, Options: options}
}

func dialogue(start string, nodes ...entity.DialogueNode) entity.Dialogue {
	d := entity.Dialogue{StartNodeID: start, Nodes: make(map[string]entity.DialogueNode, len(nodes))}
	for _, n := range nodes {
		d.Nodes[n.ID] = n
	}
	return d
}

// Lessons returns fresh copies of the built-in lessons.
func Lessons() []*entity.Lesson {
	lessons := []*entity.Lesson{greetings(), numbers(), phrases()}
	for i, l := range lessons {
		l.Origin = entity.OriginStatic
		l.CreatedAt = seededAt.Add(time.Duration(i) * time.Minute)
	}
	return lessons
}

// GrammarTopics returns the built-in grammar topics.
func GrammarTopics() []entity.GrammarTopic {
	return []entity.GrammarTopic{
		{
			ID:      "g1",
			Title:   bi("Genders & Articles (Der, Die, Das)", "ಲಿಂಗಗಳು ಮತ್ತು ಲೇಖನಗಳು"),
			Summary: bi("Understanding the three genders in German and how they differ from English.", "ಜರ್ಮನ್‌ನಲ್ಲಿರುವ ಮೂರು ಲಿಂಗಗಳನ್ನು ಮತ್ತು ಅವು ಇಂಗ್ಲಿಷ್‌ಗಿಂತ ಹೇಗೆ ಭಿನ್ನವಾಗಿವೆ ಎಂಬುದನ್ನು ಅರ್ಥಮಾಡಿಕೊಳ್ಳುವುದು."),
			Icon:    "Type",
		},
		{
			ID:      "g2",
			Title:   bi("Sentence Structure (V2 Rule)", "ವಾಕ್ಯ ರಚನೆ (V2 ನಿಯಮ)"),
			Summary: bi("The golden rule of where the verb sits in a German sentence.", "ಜರ್ಮನ್ ವಾಕ್ಯದಲ್ಲಿ ಕ್ರಿಯಾಪದವು ಎಲ್ಲಿ ಕುಳಿತುಕೊಳ್ಳುತ್ತದೆ ಎಂಬುವ ಸುವರ್ಣ ನಿಯಮ."),
			Icon:    "Layout",
		},
		{
			ID:      "g3",
			Title:   bi("Personal Pronouns", "ಪುರುಷವಾಚಕ ಸರ್ವನಾಮಗಳು"),
			Summary: bi(`I, You, He, She, It in German - including formal and informal "You".`, `ಜರ್ಮನ್‌ನಲ್ಲಿ ನಾನು, ನೀನು, ಅವನು, ಅವಳು - ಗೌರವಾನ್ವಿತ ಮತ್ತು ಸಾಮಾನ್ಯ "ನೀನು" ಸೇರಿದಂತೆ.`),
			Icon:    "Users",
		},
	}
}
