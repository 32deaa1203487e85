package nlp

// Trigger is a single lexical cue for an intent. Phrase may contain spaces,
// in which case it is matched as a whole-word phrase rather than a token.
type Trigger struct {
	Phrase string
	Weight float64
}

// Config holds every table the pipeline consumes. It is built once at
// startup and never mutated afterwards, so it is safe to share between
// requests without locking.
type Config struct {
	Fillers         []string
	DialectVariants map[string]string
	Triggers        map[Intent][]Trigger
	Priority        []Intent
	VaguePeriods    map[string]string
	MinConfidence   float64
	Contacts        []string
	ContactHints    []string
	Medications     []string
	Cities          []string
	MediaNames      map[string]string
	SummaryStopList []string
}

// WithContacts returns a shallow copy bound to a caller-supplied contact
// list, leaving the shared tables untouched.
func (c *Config) WithContacts(contacts []string) *Config {
	clone := *c
	clone.Contacts = contacts
	return &clone
}

func DefaultConfig() *Config {
	return &Config{
		Fillers: []string{
			"euh", "euhh", "heuu", "hmm", "mmm", "ben", "bah",
			"yaani", "ya3ni", "zaama", "uh", "ah", "hein",
		},

		// Spelling variants are collapsed token by token after filler
		// removal. Every value is a fixed point of the table, which keeps
		// normalization idempotent. The empty value drops the token.
		DialectVariants: map[string]string{
			"sbah":     "matin",
			"sbe7":     "matin",
			"ghodwa":   "demain",
			"ghodwaa":  "demain",
			"ghoudwa":  "demain",
			"doctour":  "docteur",
			"dochtour": "docteur",
			"tbib":     "docteur",
			"lyoum":    "aujourdhui",
			"lioum":    "aujourdhui",
			"saa":      "heure",
			"s3a":      "heure",
			"dwa":      "medicament",
			"dawa":     "medicament",
			"jaw":      "meteo",
			"klim":     "appelle",
			"3ayet":    "appelle",
			"3ayyet":   "appelle",
			"fakarni":  "rappelle",
			"fakkarni": "rappelle",
			"fasakh":   "annule",
			"ab3ath":   "envoie",
			"monabbih": "reveil",
			"najda":    "secours",
			"chnouwa":  "quoi",
			"barcha":   "beaucoup",
			"lil":      "soir",
			"el":       "",
			"l":        "",
			"غدوة":     "demain",
			"دواء":     "medicament",
			"نجدة":     "secours",
			"طبيب":     "docteur",
		},

		Triggers: map[Intent][]Trigger{
			IntentEmergencyCall: {
				{"urgence", 2.0}, {"samu", 2.0}, {"ambulance", 2.0},
				{"secours", 2.0}, {"au secours", 2.5}, {"je suis tombe", 2.0},
			},
			IntentMedicationReminder: {
				{"medicament", 1.2}, {"cachet", 1.2}, {"traitement", 1.2},
				{"pilule", 1.2}, {"comprime", 1.2},
			},
			IntentCancelReminder: {
				{"annule", 1.2}, {"supprime", 1.2}, {"efface", 1.2},
				{"enleve le rappel", 1.5},
			},
			IntentCallContact: {
				{"appelle", 1.0}, {"appel", 1.0}, {"telephone", 1.0},
				{"contacte", 1.0},
			},
			IntentCreateReminder: {
				{"rappelle", 1.0}, {"rappel", 1.0}, {"souviens", 1.0},
				{"rdv", 1.0}, {"rendez vous", 1.0}, {"n oublie pas", 1.0},
			},
			IntentSetAlarm: {
				{"alarme", 1.2}, {"reveil", 1.2}, {"reveille", 1.2},
			},
			IntentSendMessage: {
				{"message", 1.0}, {"sms", 1.0}, {"envoie", 1.0}, {"dis a", 1.0},
			},
			IntentGetWeather: {
				{"meteo", 1.2}, {"pluie", 1.0}, {"temperature", 1.0},
				{"il fait", 0.8}, {"temps", 0.6},
			},
			IntentPlayMedia: {
				{"musique", 1.0}, {"radio", 1.0}, {"coran", 1.2},
				{"quran", 1.2}, {"chanson", 1.0}, {"mets", 0.6},
			},
			IntentCheckTime: {
				{"quelle heure", 1.5}, {"wa9tech", 1.5}, {"heure", 0.4},
			},
		},

		// Tie-break ordering. Emergency ranks first so a coincidental
		// keyword overlap with a routine intent can never outrank it.
		Priority: []Intent{
			IntentEmergencyCall,
			IntentMedicationReminder,
			IntentCancelReminder,
			IntentCallContact,
			IntentCreateReminder,
			IntentSetAlarm,
			IntentSendMessage,
			IntentGetWeather,
			IntentPlayMedia,
			IntentCheckTime,
		},

		// Representative clock time per vague day period. Declared policy,
		// kept as configuration so it can be versioned with the rest of
		// the tables.
		VaguePeriods: map[string]string{
			"matin":      "08:00",
			"midi":       "12:00",
			"apres midi": "15:00",
			"soir":       "20:00",
			"nuit":       "22:00",
		},

		MinConfidence: 0.2,

		ContactHints: []string{
			"fils", "fille", "docteur", "medecin", "voisin", "voisine",
			"soeur", "frere", "pharmacie", "taxi", "maman", "papa",
		},

		Medications: []string{
			"doliprane", "aspirine", "paracetamol", "insuline", "ventoline",
		},

		Cities: []string{
			"tunis", "sfax", "sousse", "nabeul", "monastir", "bizerte",
			"gabes", "ariana", "kairouan", "djerba",
		},

		MediaNames: map[string]string{
			"coran":    "quran",
			"quran":    "quran",
			"radio":    "radio",
			"musique":  "musique",
			"chanson":  "musique",
			"chansons": "musique",
		},

		SummaryStopList: []string{
			"rappelle", "rappel", "souviens", "moi", "toi", "de", "que",
			"demain", "aujourdhui", "matin", "midi", "soir", "nuit",
			"medicament", "annule", "supprime", "a", "le", "la", "mon", "ma",
		},
	}
}
