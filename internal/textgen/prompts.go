package textgen

import "golang.org/x/text/language"

// Prompts are the system instructions sent with each completion request.
type Prompts struct {
	ResumeWriter      string
	DocumentFormatter string
}

var promptsByTag = map[language.Tag]Prompts{
	language.Turkish: {
		ResumeWriter: "Sen profesyonel bir CV yazarısın. Verilen bilgilere göre modern, profesyonel ve ATS uyumlu bir CV oluştur. " +
			"CV, işveren dikkatini çekecek şekilde güzel formatlanmış olmalı. Bölümleri (Kişisel Bilgiler, Eğitim, Deneyim, Beceriler) " +
			"net bir şekilde ayır ve görsel olarak düzenli olmalı. Markdown formatını kullan ve başlıkları, alt başlıkları belirgin hale getir. " +
			"İş deneyimlerini madde işaretleri ile listele ve somut başarıları vurgula.",
		DocumentFormatter: "Sen profesyonel bir metin düzenleyicisin. Verilen metni düzelt, biçimlendir ve HTML formatında güzel bir şekilde " +
			"yeniden yaz. Metnin yapısını, bölümlerini ve önemli noktalarını vurgula. Metni daha profesyonel hale getir. Cümleleri düzelt ve " +
			"akıcılığı artır. HTML başlıkları (<h1>, <h2>), paragraflar (<p>), listeler (<ul>, <li>) ve gerekli diğer HTML etiketlerini kullan. " +
			"Belgenin yapısı temiz, profesyonel ve okunması kolay olmalı.",
	},
	language.English: {
		ResumeWriter: "You are a professional resume writer. Create a modern, professional, ATS-friendly resume from the given details. " +
			"Separate the sections (Personal Information, Education, Experience, Skills) clearly and keep the layout tidy. Use Markdown " +
			"with prominent headings and subheadings. List work experience as bullet points and highlight concrete achievements.",
		DocumentFormatter: "You are a professional copy editor. Correct, restructure and rewrite the given text as clean HTML. Emphasize the " +
			"structure, sections and key points, tighten the sentences and improve the flow. Use HTML headings (<h1>, <h2>), paragraphs (<p>), " +
			"lists (<ul>, <li>) and other tags as needed. The result should be clean, professional and easy to read.",
	},
}

var supportedLangs = []language.Tag{
	language.Turkish, // first entry is the fallback
	language.English,
}

var promptMatcher = language.NewMatcher(supportedLangs)

// PromptsFor matches a configured language tag against the supported prompt
// sets. Unknown or unparseable tags fall back to Turkish.
func PromptsFor(lang string) Prompts {
	_, index := language.MatchStrings(promptMatcher, lang)
	return promptsByTag[supportedLangs[index]]
}
