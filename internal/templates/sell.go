package templates

import (
	"html/template"
	"time"

	"github.com/a-h/templ"

	"github.com/academlist/seller-portal/internal/domain"
	"github.com/academlist/seller-portal/internal/form"
)

// SellData drives the seller page and its fragments.
type SellData struct {
	Shell
	View    form.View
	Notices []domain.Notice
	// ResetAfter is how long the success panel waits before asking for a
	// fresh form.
	ResetAfter      time.Duration
	ReceiptsEnabled bool
}

// AcceptHint is the picker's suffix filter.
func (d SellData) AcceptHint() string { return domain.AcceptHint }

// FieldErr returns the inline error fragment data for field.
func (d SellData) FieldErr(field domain.Field) FieldErrorData {
	return FieldErrorData{Field: field, Message: d.View.Error(field)}
}

// UploadClass returns the drop zone classes.
func (d SellData) UploadClass() string {
	switch {
	case d.View.ShowFileError():
		return "border-red-500 bg-red-50"
	case d.View.DragActive:
		return "border-green-500 bg-green-50"
	default:
		return "border-gray-300 hover:bg-gray-50"
	}
}

// FieldErrorData is the inline error under one input. Message is empty when
// the field is valid; the element is still rendered so it can be swapped.
type FieldErrorData struct {
	Field   domain.Field
	Message string
}

// Step is one entry of the "how it works" strip.
type Step struct {
	Number      int
	Title       string
	Description string
}

// Steps returns the three stages of selling a paper.
func Steps() []Step {
	return []Step{
		{1, "העלאת העבודה", "העלה את העבודה האקדמית שלך עם תקציר ופרטים רלוונטיים"},
		{2, "אישור ופרסום", "הצוות שלנו יבדוק את העבודה ויפרסם אותה באתר לאחר אישור"},
		{3, "קבלת תשלום", "קבל תשלום על כל מכירה של העבודה שלך דרך הפלטפורמה"},
	}
}

// Testimonial is a quote from an existing seller.
type Testimonial struct {
	Name  string
	Role  string
	Image string
	Quote string
}

func Testimonials() []Testimonial {
	return []Testimonial{
		{"דניאל כהן", "סטודנט לפסיכולוגיה", "/images/testimonials/person1.jpg", "מכרתי כבר 5 עבודות דרך אקדליסט. התהליך פשוט והתשלום הוגן. ממליץ בחום!"},
		{"מיכל לוי", "בוגרת תואר שני במשפטים", "/images/testimonials/person2.jpg", "אקדליסט נתנה לי הזדמנות להרוויח מהידע שצברתי במהלך התואר. שירות מעולה ותמיכה מקצועית."},
		{"אלון ברק", "דוקטורנט לחינוך", "/images/testimonials/person3.jpg", "הפלטפורמה מאפשרת לי להגיע לקהל רחב של סטודנטים ולשתף את המחקרים שלי. מומלץ!"},
	}
}

var sellFuncs = template.FuncMap{
	"steps":        Steps,
	"testimonials": Testimonials,
}

var sellTmpl = template.Must(template.Must(baseTmpl.Clone()).Funcs(sellFuncs).Parse(`
{{define "content"}}
<section class="py-12 px-4 relative">
  <div class="absolute inset-0 bg-cover bg-center z-0" style="background-image: url('/images/sell-banner.jpg')">
    <div class="absolute inset-0 bg-gradient-to-b from-black/70 to-black/40"></div>
  </div>
  <div class="relative z-10 container mx-auto">
    <div class="text-center mb-12">
      <h1 class="text-3xl md:text-4xl font-bold mb-6 text-white">הצטרפות ככותב באקדליסט</h1>
      <p class="text-xl text-white max-w-3xl mx-auto">יש לך עבודות אקדמיות איכותיות? הצטרף אלינו ומכור את העבודות שלך באמצעות הפלטפורמה שלנו</p>
    </div>

    <div class="grid grid-cols-1 md:grid-cols-3 gap-8 mb-12">
      {{- range steps}}
      <div class="rounded-lg bg-white shadow-md p-6 flex flex-col items-center text-center">
        <div class="bg-green-100 p-3 rounded-full mb-4 w-16 h-16 flex items-center justify-center">
          <span class="text-2xl font-bold text-green-600">{{.Number}}</span>
        </div>
        <h3 class="text-xl font-semibold mb-2">{{.Title}}</h3>
        <p class="text-gray-600">{{.Description}}</p>
      </div>
      {{- end}}
    </div>

    <div class="rounded-lg bg-white shadow-lg p-8">
      <h2 class="text-2xl font-bold mb-6">טופס הגשת עבודה</h2>
      {{template "sell-form" .}}
    </div>

    <div class="mt-16">
      <h2 class="text-2xl md:text-3xl font-bold text-center text-white mb-8">מה אומרים עלינו הכותבים?</h2>
      <div class="grid grid-cols-1 md:grid-cols-3 gap-6">
        {{- range testimonials}}
        <div class="rounded-lg bg-white shadow-md p-6 h-full">
          <div class="flex items-center mb-4">
            <img src="{{.Image}}" alt="{{.Name}}" class="w-12 h-12 rounded-full object-cover ml-4" onerror="this.src='/images/testimonials/default.jpg'">
            <div>
              <h4 class="font-bold">{{.Name}}</h4>
              <p class="text-gray-600 text-sm">{{.Role}}</p>
            </div>
          </div>
          <p class="text-gray-700">"{{.Quote}}"</p>
        </div>
        {{- end}}
      </div>
    </div>
  </div>
</section>
<script>
(function () {
  var active = false;
  function zone(e) { return e.target && e.target.closest && e.target.closest('#drop-zone'); }
  function drag(state) {
    if (active === state) return;
    active = state;
    htmx.ajax('POST', '/sell/drag/' + (state ? 'enter' : 'leave'), {target: '#upload', swap: 'outerHTML'});
  }
  ['dragenter', 'dragover'].forEach(function (type) {
    document.addEventListener(type, function (e) {
      if (!zone(e)) return;
      e.preventDefault();
      drag(true);
    });
  });
  document.addEventListener('dragleave', function (e) {
    if (!zone(e)) return;
    e.preventDefault();
    drag(false);
  });
  document.addEventListener('drop', function (e) {
    if (!zone(e)) return;
    e.preventDefault();
    active = false;
    var files = e.dataTransfer && e.dataTransfer.files;
    if (!files || !files[0]) { drag(false); return; }
    var body = new FormData();
    body.append('file', files[0]);
    fetch('/sell/file?source=drop', {method: 'POST', body: body, credentials: 'same-origin'})
      .then(function (r) { return r.text(); })
      .then(function (html) {
        var el = document.getElementById('upload');
        if (!el) return;
        el.outerHTML = html;
        htmx.process(document.getElementById('upload'));
      });
  });
})();
</script>
{{end}}

{{define "sell-form"}}
<div id="sell-form">
  {{template "toasts" .Notices}}
  {{- if .View.Success}}
  <div class="bg-green-50 p-6 rounded-lg text-center"
       hx-get="/sell/form" hx-trigger="load delay:{{millis .ResetAfter}}ms" hx-target="#sell-form" hx-swap="outerHTML">
    <div class="bg-green-100 p-3 rounded-full w-16 h-16 mx-auto mb-4 flex items-center justify-center text-green-600 text-3xl">✓</div>
    <h3 class="text-xl font-bold mb-2">העבודה נשלחה בהצלחה!</h3>
    <p class="text-gray-600 mb-4">תודה שהגשת את העבודה שלך. הצוות שלנו יבדוק אותה ויצור איתך קשר בהקדם.</p>
    {{- if and .ReceiptsEnabled .View.SubmissionID}}
    <p class="mb-4"><a href="/sell/receipts/{{itoa .View.SubmissionID}}" class="text-green-700 underline">הורדת אישור הגשה (PDF)</a></p>
    {{- end}}
    <button type="button" class="rounded-full bg-green-600 hover:bg-green-500 px-6 py-2 text-white"
            hx-post="/sell/reset" hx-target="#sell-form" hx-swap="outerHTML">הגשת עבודה נוספת</button>
  </div>
  {{- else}}
  <form class="space-y-6" hx-post="/sell/submit" hx-target="#sell-form" hx-swap="outerHTML"
        hx-disabled-elt="#submit-button" hx-indicator="#submit-button" novalidate>
    <div class="grid grid-cols-1 md:grid-cols-2 gap-6">
      <div class="space-y-2 field">
        <label for="name" class="block font-medium">שם מלא</label>
        <input id="name" name="name" value="{{.View.Fields.Name}}" placeholder="הכנס את שמך המלא"
               class="w-full rounded-md border px-3 py-2 transition-all duration-300 border-gray-300 focus:border-green-500 focus:ring-green-500"
               hx-post="/sell/fields/name" hx-trigger="input changed delay:300ms" hx-target="#name-error" hx-swap="outerHTML">
        {{template "field-error" .FieldErr "name"}}
      </div>
      <div class="space-y-2 field">
        <label for="email" class="block font-medium">דוא״ל</label>
        <input id="email" name="email" type="email" value="{{.View.Fields.Email}}" placeholder="הכנס את כתובת הדוא״ל שלך"
               class="w-full rounded-md border px-3 py-2 transition-all duration-300 border-gray-300 focus:border-green-500 focus:ring-green-500"
               hx-post="/sell/fields/email" hx-trigger="input changed delay:300ms" hx-target="#email-error" hx-swap="outerHTML">
        {{template "field-error" .FieldErr "email"}}
      </div>
    </div>

    <div class="space-y-2 field">
      <label for="title" class="block font-medium">כותרת העבודה</label>
      <input id="title" name="title" value="{{.View.Fields.Title}}" placeholder="הכנס את כותרת העבודה"
             class="w-full rounded-md border px-3 py-2 transition-all duration-300 border-gray-300 focus:border-green-500 focus:ring-green-500"
             hx-post="/sell/fields/title" hx-trigger="input changed delay:300ms" hx-target="#title-error" hx-swap="outerHTML">
      {{template "field-error" .FieldErr "title"}}
    </div>

    <div class="space-y-2 field">
      <label for="summary" class="block font-medium">תקציר העבודה</label>
      <textarea id="summary" name="summary" rows="5" placeholder="כתוב תקציר קצר של העבודה"
                class="w-full rounded-md border px-3 py-2 transition-all duration-300 border-gray-300 focus:border-green-500 focus:ring-green-500"
                hx-post="/sell/fields/summary" hx-trigger="input changed delay:300ms" hx-target="#summary-error" hx-swap="outerHTML">{{.View.Fields.Summary}}</textarea>
      {{template "field-error" .FieldErr "summary"}}
    </div>

    <div class="space-y-2">
      <span class="block font-medium">העלאת קובץ העבודה</span>
      {{template "upload" .}}
    </div>

    <div class="flex items-start gap-2 field field-check">
      <input type="checkbox" id="terms" name="terms" {{if .View.Fields.TermsAccepted}}checked{{end}}
             class="mt-1"
             hx-post="/sell/fields/terms" hx-trigger="change" hx-target="#terms-error" hx-swap="outerHTML">
      <div class="grid gap-1.5 leading-none">
        <label for="terms" class="text-sm font-normal">
          אני מאשר/ת כי העבודה היא שלי וברשותי הזכויות המלאות עליה, ואני מסכים/ה לתנאי השימוש של אקדליסט
        </label>
        {{template "field-error" .FieldErr "terms"}}
      </div>
    </div>

    <button type="submit" id="submit-button" {{if .View.Submitting}}disabled{{end}}
            class="w-full bg-green-600 hover:bg-green-500 text-white py-4 rounded-full shadow-lg flex items-center justify-center disabled:opacity-60">
      <span class="idle-label">שליחת העבודה ←</span>
      <span class="htmx-indicator">שולח...</span>
    </button>
  </form>
  {{- end}}
</div>
{{end}}

{{define "upload"}}
<div id="upload">
  <div id="drop-zone" class="border-2 border-dashed rounded-lg p-8 text-center transition-colors cursor-pointer {{.UploadClass}}">
    <input type="file" id="file-upload" name="file" class="hidden" accept="{{.AcceptHint}}"
           hx-post="/sell/file?source=picker" hx-encoding="multipart/form-data" hx-trigger="change"
           hx-params="file" hx-target="#upload" hx-swap="outerHTML">
    <label for="file-upload" class="cursor-pointer">
      {{- with .View.File}}
      <div class="flex flex-col items-center">
        <div class="bg-green-100 p-3 rounded-full mb-4 text-green-600">✓</div>
        <p class="text-green-600 font-medium mb-2">הקובץ הועלה בהצלחה</p>
        <p class="text-gray-600">{{.Name}} <span class="text-gray-400 text-sm">({{size .Size}})</span></p>
        <button type="button" class="mt-2 text-gray-500 hover:text-red-500 flex items-center text-sm"
                hx-delete="/sell/file" hx-target="#upload" hx-swap="outerHTML">✕ הסר קובץ</button>
      </div>
      {{- else}}
        {{- if .View.FileError}}
      <div class="flex flex-col items-center">
        <div class="bg-red-100 p-3 rounded-full mb-4 text-red-600">!</div>
        <p class="text-red-600 font-medium mb-2">{{.View.FileError}}</p>
        <p class="text-gray-400 text-sm">לחץ להעלאת קובץ או גרור לכאן</p>
      </div>
        {{- else}}
      <p class="text-gray-600 mb-2">לחץ להעלאת קובץ או גרור לכאן</p>
      <p class="text-gray-400 text-sm">PDF, Word או PowerPoint (מקסימום 20MB)</p>
        {{- end}}
      {{- end}}
    </label>
  </div>
  {{- if .View.ShowFileError}}
  <p id="file-error" class="text-red-500 text-sm mt-1">{{.View.FileError}}</p>
  {{- end}}
</div>
{{end}}

{{define "field-error"}}<p id="{{.Field}}-error" class="field-error text-red-500 text-sm mt-1">{{.Message}}</p>{{end}}

{{define "toasts"}}
<div class="fixed bottom-4 left-4 z-50 flex flex-col gap-2" aria-live="polite">
  {{- range .}}
  <div role="status" class="rounded-md shadow-lg p-4 w-80 {{if eq .Kind "destructive"}}bg-red-600 text-white{{else}}bg-white border{{end}}">
    <p class="font-semibold">{{.Title}}</p>
    <p class="text-sm">{{.Description}}</p>
  </div>
  {{- end}}
</div>
{{end}}
`))

// Sell renders the full seller page.
func Sell(d SellData) templ.Component {
	d.Path = "/sell"
	return component(sellTmpl, "layout", d)
}

// SellForm renders the form region alone, for htmx swaps.
func SellForm(d SellData) templ.Component {
	return component(sellTmpl, "sell-form", d)
}

// Upload renders the upload widget alone.
func Upload(d SellData) templ.Component {
	return component(sellTmpl, "upload", d)
}

// FieldError renders one input's inline error element.
func FieldError(field domain.Field, message string) templ.Component {
	return component(sellTmpl, "field-error", FieldErrorData{Field: field, Message: message})
}
