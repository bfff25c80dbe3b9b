package quran

// Transliteration pairs an English transliteration of a chapter name with its Arabic name.
type Transliteration struct {
	English string
	Arabic  string
}

// Transliterations lists the chapters in canonical order.
var Transliterations = []Transliteration{
	{"fatiha", "الفاتحة"},
	{"baqarah", "البقرة"},
	{"imran", "آل عمران"},
	{"nisa", "النساء"},
	{"maidah", "المائدة"},
	{"anam", "الأنعام"},
	{"araf", "الأعراف"},
	{"anfal", "الأنفال"},
	{"taubah", "التوبة"},
	{"yunus", "يونس"},
	{"hud", "هود"},
	{"yusuf", "يوسف"},
	{"rad", "الرعد"},
	{"ibrahim", "إبراهيم"},
	{"hijr", "الحجر"},
	{"nahl", "النحل"},
	{"isra", "الإسراء"},
	{"kahf", "الكهف"},
	{"maryam", "مريم"},
	{"taha", "طه"},
	{"anbiya", "الأنبياء"},
	{"hajj", "الحج"},
	{"muminun", "المؤمنون"},
	{"nur", "النور"},
	{"furqan", "الفرقان"},
	{"shuara", "الشعراء"},
	{"naml", "النمل"},
	{"qasas", "القصص"},
	{"ankabut", "العنكبوت"},
	{"rum", "الروم"},
	{"luqman", "لقمان"},
	{"sajdah", "السجدة"},
	{"ahzab", "الأحزاب"},
	{"saba", "سبأ"},
	{"fatir", "فاطر"},
	{"yasin", "يس"},
	{"saffat", "الصافات"},
	{"sad", "ص"},
	{"zumar", "الزمر"},
	{"ghafir", "غافر"},
	{"fussilat", "فصلت"},
	{"shura", "الشورى"},
	{"zukhruf", "الزخرف"},
	{"dukhan", "الدخان"},
	{"jathiyah", "الجاثية"},
	{"ahqaf", "الأحقاف"},
	{"muhammad", "محمد"},
	{"fath", "الفتح"},
	{"hujurat", "الحجرات"},
	{"qaf", "ق"},
	{"dhariyat", "الذاريات"},
	{"tur", "الطور"},
	{"najm", "النجم"},
	{"qamar", "القمر"},
	{"rahman", "الرحمن"},
	{"waqiah", "الواقعة"},
	{"hadid", "الحديد"},
	{"mujadilah", "المجادلة"},
	{"hashr", "الحشر"},
	{"mumtahanah", "الممتحنة"},
	{"saff", "الصف"},
	{"jumuah", "الجمعة"},
	{"munafiqun", "المنافقون"},
	{"taghabun", "التغابن"},
	{"talaq", "الطلاق"},
	{"tahrim", "التحريم"},
	{"mulk", "الملك"},
	{"qalam", "القلم"},
	{"haqqah", "الحاقة"},
	{"maarij", "المعارج"},
	{"nuh", "نوح"},
	{"jinn", "الجن"},
	{"muzammil", "المزمل"},
	{"muddathir", "المدثر"},
	{"qiyamah", "القيامة"},
	{"insan", "الإنسان"},
	{"mursalat", "المرسلات"},
	{"naba", "النبأ"},
	{"naziat", "النازعات"},
	{"abasa", "عبس"},
	{"takwir", "التكوير"},
	{"infitar", "الانفطار"},
	{"mutaffifin", "المطففين"},
	{"inshiqaq", "الانشقاق"},
	{"buruj", "البروج"},
	{"tariq", "الطارق"},
	{"ala", "الأعلى"},
	{"ghashiyah", "الغاشية"},
	{"fajr", "الفجر"},
	{"balad", "البلد"},
	{"shams", "الشمس"},
	{"layl", "الليل"},
	{"duha", "الضحى"},
	{"sharh", "الشرح"},
	{"tin", "التين"},
	{"alaq", "العلق"},
	{"qadr", "القدر"},
	{"bayyinah", "البينة"},
	{"zalzalah", "الزلزلة"},
	{"adiyat", "العاديات"},
	{"qariah", "القارعة"},
	{"takathur", "التكاثر"},
	{"asr", "العصر"},
	{"humazah", "الهمزة"},
	{"fil", "الفيل"},
	{"quraish", "قريش"},
	{"maun", "الماعون"},
	{"kawthar", "الكوثر"},
	{"kafirun", "الكافرون"},
	{"nasr", "النصر"},
	{"masad", "المسد"},
	{"ikhlas", "الإخلاص"},
	{"falaq", "الفلق"},
	{"nas", "الناس"},
}

// chapterIDs maps an Arabic chapter name to its number.
var chapterIDs = map[string]int{
	"الفاتحة":   1,
	"البقرة":    2,
	"آل عمران":  3,
	"النساء":    4,
	"المائدة":   5,
	"الأنعام":   6,
	"الأعراف":   7,
	"الأنفال":   8,
	"التوبة":    9,
	"يونس":      10,
	"هود":       11,
	"يوسف":      12,
	"الرعد":     13,
	"إبراهيم":   14,
	"الحجر":     15,
	"النحل":     16,
	"الإسراء":   17,
	"الكهف":     18,
	"مريم":      19,
	"طه":        20,
	"الأنبياء":  21,
	"الحج":      22,
	"المؤمنون":  23,
	"النور":     24,
	"الفرقان":   25,
	"الشعراء":   26,
	"النمل":     27,
	"القصص":     28,
	"العنكبوت":  29,
	"الروم":     30,
	"لقمان":     31,
	"السجدة":    32,
	"الأحزاب":   33,
	"سبأ":       34,
	"فاطر":      35,
	"يس":        36,
	"الصافات":   37,
	"ص":         38,
	"الزمر":     39,
	"غافر":      40,
	"فصلت":      41,
	"الشورى":    42,
	"الزخرف":    43,
	"الدخان":    44,
	"الجاثية":   45,
	"الأحقاف":   46,
	"محمد":      47,
	"الفتح":     48,
	"الحجرات":   49,
	"ق":         50,
	"الذاريات":  51,
	"الطور":     52,
	"النجم":     53,
	"القمر":     54,
	"الرحمن":    55,
	"الواقعة":   56,
	"الحديد":    57,
	"المجادلة":  58,
	"الحشر":     59,
	"الممتحنة":  60,
	"الصف":      61,
	"الجمعة":    62,
	"المنافقون": 63,
	"التغابن":   64,
	"الطلاق":    65,
	"التحريم":   66,
	"الملك":     67,
	"القلم":     68,
	"الحاقة":    69,
	"المعارج":   70,
	"نوح":       71,
	"الجن":      72,
	"المزمل":    73,
	"المدثر":    74,
	"القيامة":   75,
	"الإنسان":   76,
	"المرسلات":  77,
	"النبأ":     78,
	"النازعات":  79,
	"عبس":       80,
	"التكوير":   81,
	"الانفطار":  82,
	"المطففين":  83,
	"الانشقاق":  84,
	"البروج":    85,
	"الطارق":    86,
	"الأعلى":    87,
	"الغاشية":   88,
	"الفجر":     89,
	"البلد":     90,
	"الشمس":     91,
	"الليل":     92,
	"الضحى":     93,
	"الشرح":     94,
	"التين":     95,
	"العلق":     96,
	"القدر":     97,
	"البينة":    98,
	"الزلزلة":   99,
	"العاديات":  100,
	"القارعة":   101,
	"التكاثر":   102,
	"العصر":     103,
	"الهمزة":    104,
	"الفيل":     105,
	"قريش":      106,
	"الماعون":   107,
	"الكوثر":    108,
	"الكافرون":  109,
	"النصر":     110,
	"المسد":     111,
	"الإخلاص":   112,
	"الفلق":     113,
	"الناس":     114,
}

// ChapterID returns the number of the chapter with the given Arabic name.
func ChapterID(name string) (int, bool) {
	id, ok := chapterIDs[name]
	return id, ok
}
