package content

import "HiddenLight/internal/domain"

// Built-in bilingual corpus. Entries are served in declaration order.

var biography = []domain.BiographyEvent{
	{
		ID:            "bio-1",
		Year:          "570 CE",
		Date:          "570-04-22",
		Title:         "The Year of the Elephant",
		TitleAr:       "عام الفيل",
		Description:   "Birth of Prophet Muhammad ﷺ in Mecca. His father Abdullah had passed away before his birth.",
		DescriptionAr: "مولد النبي محمد ﷺ في مكة المكرمة. توفي والده عبد الله قبل ولادته.",
		Category:      "Birth",
	},
	{
		ID:            "bio-2",
		Year:          "576 CE",
		Date:          "576-01-01",
		Title:         "Loss of Mother",
		TitleAr:       "وفاة الأم",
		Description:   "His mother Aminah passes away when he is six years old. He is taken into the care of his grandfather Abdul-Muttalib.",
		DescriptionAr: "وفاة والدته آمنة بنت وهب وهو في السادسة من عمره، وكفله جده عبد المطلب.",
		Category:      "Childhood",
	},
	{
		ID:            "bio-3",
		Year:          "610 CE",
		Date:          "610-08-10",
		Title:         "The First Revelation",
		TitleAr:       "نزول الوحي",
		Description:   "At age 40, receiving the first verses of Quran in Cave Hira.",
		DescriptionAr: "نزول أول آيات القرآن الكريم عليه في غار حراء وهو في الأربعين من عمره.",
		Category:      "Prophethood",
	},
	{
		ID:            "bio-4",
		Year:          "622 CE",
		Date:          "622-09-24",
		Title:         "The Hijrah",
		TitleAr:       "الهجرة النبوية",
		Description:   "Migration to Medina and establishment of the first Islamic state.",
		DescriptionAr: "الهجرة من مكة إلى المدينة المنورة وتأسيس الدولة الإسلامية الأولى.",
		Category:      "Migration",
	},
}

var hadiths = []domain.Hadith{
	{
		ID:       "hadith-1",
		Text:     "Actions are judged by intentions, so each man will have what he intended.",
		TextAr:   "إنما الأعمال بالنيات، وإنما لكل امرئ ما نوى",
		Source:   "Sahih Al-Bukhari",
		SourceAr: "صحيح البخاري",
		Category: "Intention",
		Tags:     []string{"Faith", "Sincerity"},
	},
	{
		ID:       "hadith-2",
		Text:     "None of you will have faith till he wishes for his (Muslim) brother what he likes for himself.",
		TextAr:   "لا يؤمن أحدكم حتى يحب لأخيه ما يحب لنفسه",
		Source:   "Bukhari & Muslim",
		SourceAr: "متفق عليه",
		Category: "Brotherhood",
		Tags:     []string{"Ethics", "Community"},
	},
	{
		ID:       "hadith-3",
		Text:     "The strong is not the one who overcomes the people by his strength, but the strong is the one who controls himself while in anger.",
		TextAr:   "ليس الشديد بالصرعة، إنما الشديد الذي يملك نفسه عند الغضب",
		Source:   "Sahih Al-Bukhari",
		SourceAr: "صحيح البخاري",
		Category: "Character",
		Tags:     []string{"Self-control", "Manners"},
	},
}

var companions = []domain.Companion{
	{
		ID:            "companion-1",
		Name:          "Abu Bakr As-Siddiq",
		NameAr:        "أبو بكر الصديق",
		Title:         "The Truthful",
		TitleAr:       "الصديق",
		Description:   "The closest companion and first Caliph, known for his unwavering faith.",
		DescriptionAr: "أقرب الصحابة وأول الخلفاء الراشدين، عرف بإيمانه الراسخ.",
		Category:      "Muhajirun",
		Image:         "https://images.unsplash.com/photo-1564507592333-c60657eea523?q=80&w=400&auto=format&fit=crop",
	},
	{
		ID:            "companion-2",
		Name:          "Umar ibn Al-Khattab",
		NameAr:        "عمر بن الخطاب",
		Title:         "Al-Faruq",
		TitleAr:       "الفاروق",
		Description:   "Known for his justice, strength, and pivotal role in expanding the Islamic state.",
		DescriptionAr: "عرف بعدله وقوته ودوره المحوري في توسيع الدولة الإسلامية.",
		Category:      "Muhajirun",
		Image:         "https://images.unsplash.com/photo-1591604466107-ec97de577aff?q=80&w=400&auto=format&fit=crop",
	},
}

var battles = []domain.Battle{
	{
		ID:            "battle-1",
		Name:          "Battle of Badr",
		NameAr:        "غزوة بدر",
		Date:          "624 CE",
		Result:        "Victory",
		Description:   "The first major battle between Muslims and Quraysh.",
		DescriptionAr: "أول معركة كبرى بين المسلمين وقريش، انتهت بانتصار المسلمين.",
		Stats: []domain.BattleStat{
			{Label: "Muslims", Value: "313"},
			{Label: "Quraysh", Value: "1000"},
		},
	},
	{
		ID:            "battle-2",
		Name:          "Battle of Uhud",
		NameAr:        "غزوة أحد",
		Date:          "625 CE",
		Result:        "Setback",
		Description:   "A battle of great lessons regarding obedience to the Prophet.",
		DescriptionAr: "معركة مليئة بالدروس والعبر حول أهمية طاعة الرسول.",
		Stats: []domain.BattleStat{
			{Label: "Muslims", Value: "700"},
			{Label: "Quraysh", Value: "3000"},
		},
	},
}
