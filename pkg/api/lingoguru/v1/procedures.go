package lingoguruv1

const (
	ContentServiceName  = "lingoguru.v1.ContentService"
	PracticeServiceName = "lingoguru.v1.PracticeService"
	TutorServiceName    = "lingoguru.v1.TutorService"
)

const (
	ContentServiceListLessonsProcedure       = "/lingoguru.v1.ContentService/ListLessons"
	ContentServiceShuffleLessonsProcedure    = "/lingoguru.v1.ContentService/ShuffleLessons"
	ContentServiceGetLessonProcedure         = "/lingoguru.v1.ContentService/GetLesson"
	ContentServiceGetVocabularyProcedure     = "/lingoguru.v1.ContentService/GetVocabulary"
	ContentServiceGenerateLessonProcedure    = "/lingoguru.v1.ContentService/GenerateLesson"
	ContentServiceListGrammarTopicsProcedure = "/lingoguru.v1.ContentService/ListGrammarTopics"
	ContentServiceExplainGrammarProcedure    = "/lingoguru.v1.ContentService/ExplainGrammar"

	PracticeServiceStartDialogueProcedure   = "/lingoguru.v1.PracticeService/StartDialogue"
	PracticeServiceGetDialogueProcedure     = "/lingoguru.v1.PracticeService/GetDialogue"
	PracticeServiceSelectOptionProcedure    = "/lingoguru.v1.PracticeService/SelectOption"
	PracticeServiceRestartDialogueProcedure = "/lingoguru.v1.PracticeService/RestartDialogue"
	PracticeServiceStartQuizProcedure       = "/lingoguru.v1.PracticeService/StartQuiz"
	PracticeServiceGetQuizProcedure         = "/lingoguru.v1.PracticeService/GetQuiz"
	PracticeServiceSelectAnswerProcedure    = "/lingoguru.v1.PracticeService/SelectAnswer"
	PracticeServiceNextQuestionProcedure    = "/lingoguru.v1.PracticeService/NextQuestion"
	PracticeServiceResetQuizProcedure       = "/lingoguru.v1.PracticeService/ResetQuiz"
	PracticeServiceCloseSessionProcedure    = "/lingoguru.v1.PracticeService/CloseSession"
	PracticeServiceSpeakProcedure           = "/lingoguru.v1.PracticeService/Speak"

	TutorServiceStartChatProcedure            = "/lingoguru.v1.TutorService/StartChat"
	TutorServiceGetChatProcedure              = "/lingoguru.v1.TutorService/GetChat"
	TutorServiceSendMessageProcedure          = "/lingoguru.v1.TutorService/SendMessage"
	TutorServiceAnalyzePronunciationProcedure = "/lingoguru.v1.TutorService/AnalyzePronunciation"
)
