package domain

// User-facing copy. The site is Hebrew-only.
const (
	MsgNameTooShort    = "שם חייב להכיל לפחות 2 תווים"
	MsgEmailInvalid    = "כתובת אימייל לא תקינה"
	MsgTitleTooShort   = "כותרת העבודה חייבת להכיל לפחות 5 תווים"
	MsgSummaryTooShort = "תקציר העבודה חייב להכיל לפחות 20 תווים"
	MsgTermsRequired   = "עליך לאשר את תנאי השימוש"

	MsgFileUnsupported = "סוג הקובץ אינו נתמך. אנא העלה קובץ PDF, Word או PowerPoint"
	MsgFileTooLarge    = "גודל הקובץ חורג מהמותר (20MB)"
	MsgFileRequired    = "נא להעלות קובץ"

	NoticeSubmittedTitle = "העבודה נשלחה בהצלחה"
	NoticeSubmittedBody  = "העבודה שלך התקבלה ותיבדק על ידי הצוות שלנו בקרוב"
	NoticeFailedTitle    = "שגיאה בשליחת הטופס"
	NoticeFixFieldsBody  = "אנא תקן את השגיאות המסומנות"
	NoticeUnexpectedBody = "אירעה שגיאה בלתי צפויה. אנא נסה שוב מאוחר יותר"
)

// SubmittedNotice confirms a received submission.
func SubmittedNotice() Notice {
	return Notice{Kind: NoticeSuccess, Title: NoticeSubmittedTitle, Description: NoticeSubmittedBody}
}

// FixFieldsNotice is raised when field rules fail.
func FixFieldsNotice() Notice {
	return Notice{Kind: NoticeDestructive, Title: NoticeFailedTitle, Description: NoticeFixFieldsBody}
}

// UnexpectedErrorNotice is raised for every other failed attempt.
func UnexpectedErrorNotice() Notice {
	return Notice{Kind: NoticeDestructive, Title: NoticeFailedTitle, Description: NoticeUnexpectedBody}
}
