package reader

import (
	"regexp"
	"strings"
)

// BookRef names one book of the work.
type BookRef struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	ArTitle string `json:"ar"`
}

// Quarter is one of the four parts the work is divided into.
type Quarter struct {
	Title   string    `json:"title"`
	ArTitle string    `json:"ar"`
	Books   []BookRef `json:"books"`
}

var catalog = []Quarter{
	{Title: "Worship", ArTitle: "العبادات", Books: []BookRef{
		{"j1-k01", "Book of Knowledge", "كتاب العلم"},
		{"j1-k02", "Foundations of Belief", "قواعد العقائد"},
		{"j1-k03", "Mysteries of Purity", "أسرار الطهارة"},
		{"j1-k04", "Mysteries of Prayer", "أسرار الصلاة"},
		{"j1-k05", "Mysteries of Zakat", "أسرار الزكاة"},
		{"j1-k06", "Mysteries of Fasting", "أسرار الصيام"},
		{"j1-k07", "Secrets of Pilgrimage", "أسرار الحج"},
		{"j1-k08", "Etiquette of Quran", "آداب تلاوة القرآن"},
		{"j1-k09", "Invocations & Supplications", "الأذكار والدعوات"},
		{"j1-k10", "Arrangement of Litanies", "ترتيب الأوراد"},
	}},
	{Title: "Daily Life", ArTitle: "العادات", Books: []BookRef{
		{"j2-k02", "Etiquette of Marriage", "آداب النكاح"},
		{"j2-k04", "The Lawful & Prohibited", "الحلال والحرام"},
		{"j2-k05", "Duties of Brotherhood", "آداب الألفة والأخوة"},
		{"j2-k06", "Etiquette of Seclusion", "آداب العزلة"},
		{"j2-k07", "Etiquette of Travel", "آداب السفر"},
		{"j2-k08", "Audition & Ecstasy", "آداب السماع والوجد"},
		{"j2-k09", "Commanding Good", "الأمر بالمعروف والنهي عن المنكر"},
	}},
	{Title: "Perils", ArTitle: "المهلكات", Books: []BookRef{
		{"j3-k01", "Wonders of the Heart", "شرح عجائب القلب"},
		{"j3-k02", "Disciplining the Soul", "رياضة النفس"},
		{"j3-k03", "The Two Desires", "كسر الشهوتين"},
		{"j3-k04", "Vices of Tongue", "آفات اللسان"},
		{"j3-k05", "Anger & Malice", "ذم الغضب والحقد"},
		{"j3-k06", "Vices of the World", "ذم الدنيا"},
		{"j3-k07", "Love of Wealth", "ذم البخل وحب المال"},
		{"j3-k08", "Audition & Ecstasy", "آداب السماع والوجد"},
		{"j3-k09", "Pride & Conceit", "ذم الكبر والعجب"},
		{"j3-k10", "Condemnation of Delusion", "ذم الغرور"},
	}},
	{Title: "Salvation", ArTitle: "المنجيات", Books: []BookRef{
		{"j4-k01", "Repentance", "كتاب التوبة"},
		{"j4-k02", "Patience & Gratitude", "الصبر والشكر"},
		{"j4-k03", "Fear & Hope", "الخوف والرجاء"},
		{"j4-k05", "Love & Longing", "المحبة والشوق"},
		{"j4-k06", "Intention & Sincerity", "النية والإخلاص"},
		{"j4-k07", "Vigilance & Self-Accounting", "المراقبة والمحاسبة"},
		{"j4-k09", "Remembrance of Death", "ذكر الموت"},
	}},
}

// Catalog returns the quarters of the work with their books, in reading order.
// The returned slice is a copy.
func Catalog() []Quarter {
	out := make([]Quarter, len(catalog))
	for i, q := range catalog {
		q.Books = append([]BookRef(nil), q.Books...)
		out[i] = q
	}
	return out
}

// LookupRef returns the catalog entry for id.
func LookupRef(id string) (BookRef, bool) {
	for _, q := range catalog {
		for _, b := range q.Books {
			if b.ID == id {
				return b, true
			}
		}
	}
	return BookRef{}, false
}

var volumePrefix = regexp.MustCompile(`j\d+-k`)

// Title derives a display title from a book id: the first "j<n>-k" is
// removed and dashes become spaces, so "j1-k01" reads "01".
func Title(id string) string {
	if loc := volumePrefix.FindStringIndex(id); loc != nil {
		id = id[:loc[0]] + id[loc[1]:]
	}
	return strings.ReplaceAll(id, "-", " ")
}

// Number returns the second dash-separated field of id, or "" when there is none.
func Number(id string) string {
	parts := strings.Split(id, "-")
	if len(parts) < 2 {
		return ""
	}
	return parts[1]
}
