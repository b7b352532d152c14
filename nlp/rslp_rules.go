package nlp

// suffixRule replaces Suffix with Replacement when the word keeps at least MinStem runes
// in front of the suffix and is not listed in Exceptions.
type suffixRule struct {
	Suffix      string
	MinStem     int
	Replacement string
	Exceptions  []string
}

// Rules within a step are tried in order and the first applicable one wins, so longer
// suffixes are listed before the suffixes they end with.

var pluralRules = []suffixRule{
	{Suffix: "ns", MinStem: 1, Replacement: "m"},
	{Suffix: "ões", MinStem: 3, Replacement: "ão"},
	{Suffix: "ães", MinStem: 1, Replacement: "ão", Exceptions: []string{"mães"}},
	{Suffix: "ais", MinStem: 1, Replacement: "al", Exceptions: []string{"cais", "mais"}},
	{Suffix: "éis", MinStem: 2, Replacement: "el"},
	{Suffix: "eis", MinStem: 2, Replacement: "el"},
	{Suffix: "óis", MinStem: 2, Replacement: "ol"},
	{Suffix: "is", MinStem: 2, Replacement: "il", Exceptions: []string{
		"lápis", "cais", "mais", "crúcis", "biquínis", "pois", "depois", "dois", "leis",
	}},
	{Suffix: "les", MinStem: 3, Replacement: "l"},
	{Suffix: "res", MinStem: 3, Replacement: "r", Exceptions: []string{"árvores"}},
	{Suffix: "s", MinStem: 2, Exceptions: []string{
		"aliás", "pires", "lápis", "cais", "mais", "mas", "menos", "férias", "fezes",
		"pêsames", "crúcis", "gás", "atrás", "moisés", "através", "convés", "ês", "país",
		"após", "ambas", "ambos", "messias", "depois",
	}},
}

var feminineRules = []suffixRule{
	{Suffix: "ona", MinStem: 3, Replacement: "ão", Exceptions: []string{
		"abandona", "lona", "iona", "cortisona", "monótona", "maratona", "acetona", "detona", "carona",
	}},
	{Suffix: "ora", MinStem: 3, Replacement: "or"},
	{Suffix: "na", MinStem: 4, Replacement: "no", Exceptions: []string{
		"carona", "abandona", "lona", "iona", "cortisona", "monótona", "maratona", "acetona",
		"detona", "guiana", "campana", "grana", "caravana", "banana", "paisana",
	}},
	{Suffix: "inha", MinStem: 3, Replacement: "inho", Exceptions: []string{"rainha", "linha", "minha"}},
	{Suffix: "esa", MinStem: 3, Replacement: "ês", Exceptions: []string{
		"mesa", "obesa", "princesa", "turquesa", "ilesa", "pesa", "presa",
	}},
	{Suffix: "osa", MinStem: 3, Replacement: "oso", Exceptions: []string{"mucosa", "prosa"}},
	{Suffix: "íaca", MinStem: 3, Replacement: "íaco"},
	{Suffix: "ica", MinStem: 3, Replacement: "ico", Exceptions: []string{"dica"}},
	{Suffix: "ada", MinStem: 2, Replacement: "ado", Exceptions: []string{"pitada"}},
	{Suffix: "ida", MinStem: 3, Replacement: "ido", Exceptions: []string{"vida", "dúvida"}},
	{Suffix: "ída", MinStem: 3, Replacement: "ido", Exceptions: []string{"recaída", "saída"}},
	{Suffix: "ima", MinStem: 3, Replacement: "imo", Exceptions: []string{"vítima"}},
	{Suffix: "iva", MinStem: 3, Replacement: "ivo", Exceptions: []string{"saliva", "oliva"}},
	{Suffix: "eira", MinStem: 3, Replacement: "eiro", Exceptions: []string{
		"beira", "cadeira", "frigideira", "bandeira", "feira", "capoeira", "barreira",
		"fronteira", "besteira", "poeira",
	}},
	{Suffix: "ã", MinStem: 2, Replacement: "ão", Exceptions: []string{"amanhã", "arapuã", "fã", "divã"}},
}

var augmentativeRules = []suffixRule{
	{Suffix: "díssimo", MinStem: 5},
	{Suffix: "abilíssimo", MinStem: 5},
	{Suffix: "íssimo", MinStem: 3},
	{Suffix: "ésimo", MinStem: 3},
	{Suffix: "érrimo", MinStem: 4},
	{Suffix: "zinho", MinStem: 2},
	{Suffix: "quinho", MinStem: 4, Replacement: "c"},
	{Suffix: "uinho", MinStem: 4},
	{Suffix: "adinho", MinStem: 3},
	{Suffix: "inho", MinStem: 3, Exceptions: []string{"caminho", "cominho"}},
	{Suffix: "alhão", MinStem: 4},
	{Suffix: "uça", MinStem: 4},
	{Suffix: "aço", MinStem: 4, Exceptions: []string{"antebraço"}},
	{Suffix: "aça", MinStem: 4, Exceptions: []string{"ameaça"}},
	{Suffix: "adão", MinStem: 4},
	{Suffix: "idão", MinStem: 4},
	{Suffix: "ázio", MinStem: 3, Exceptions: []string{"topázio"}},
	{Suffix: "arraz", MinStem: 4},
	{Suffix: "zarrão", MinStem: 3},
	{Suffix: "arrão", MinStem: 4},
	{Suffix: "zão", MinStem: 2, Exceptions: []string{"coalizão"}},
	{Suffix: "ão", MinStem: 3, Exceptions: []string{
		"camarão", "chimarrão", "canção", "coração", "embrião", "grotão", "glutão", "ficção",
		"fogão", "feição", "furacão", "gamão", "lampião", "leão", "macacão", "nação", "órfão",
		"orgão", "patrão", "portão", "quinhão", "rincão", "tração", "falcão", "espião", "mamão",
		"folião", "cordão", "aptidão", "campeão", "colchão", "limão", "leilão", "melão", "barão",
		"milhão", "bilhão", "fusão", "cristão", "ilusão", "capitão", "estação", "senão",
	}},
}

var adverbRules = []suffixRule{
	{Suffix: "mente", MinStem: 4, Exceptions: []string{"experimente"}},
}

var nounRules = []suffixRule{
	{Suffix: "encialista", MinStem: 4},
	{Suffix: "alista", MinStem: 5},
	{Suffix: "agem", MinStem: 3, Exceptions: []string{"coragem", "chantagem", "vantagem", "carruagem"}},
	{Suffix: "iamento", MinStem: 4},
	{Suffix: "amento", MinStem: 3, Exceptions: []string{"firmamento", "fundamento", "departamento"}},
	{Suffix: "imento", MinStem: 3},
	{Suffix: "mento", MinStem: 6, Exceptions: []string{
		"firmamento", "elemento", "complemento", "instrumento", "departamento",
	}},
	{Suffix: "alizado", MinStem: 4},
	{Suffix: "atizado", MinStem: 4},
	{Suffix: "tizado", MinStem: 4, Exceptions: []string{"alfabetizado"}},
	{Suffix: "izado", MinStem: 5, Exceptions: []string{"organizado", "pulverizado"}},
	{Suffix: "ativo", MinStem: 4, Exceptions: []string{"pejorativo", "relativo"}},
	{Suffix: "tivo", MinStem: 4, Exceptions: []string{"relativo"}},
	{Suffix: "ivo", MinStem: 4, Exceptions: []string{"passivo", "possessivo", "pejorativo", "positivo"}},
	{Suffix: "ado", MinStem: 2, Exceptions: []string{"grado"}},
	{Suffix: "ido", MinStem: 3, Exceptions: []string{
		"cândido", "consolido", "rápido", "decido", "tímido", "duvido", "marido",
	}},
	{Suffix: "ador", MinStem: 3},
	{Suffix: "edor", MinStem: 3},
	{Suffix: "idor", MinStem: 4, Exceptions: []string{"ouvidor"}},
	{Suffix: "dor", MinStem: 4, Exceptions: []string{"ouvidor"}},
	{Suffix: "sor", MinStem: 4, Exceptions: []string{"assessor"}},
	{Suffix: "atoria", MinStem: 5},
	{Suffix: "tor", MinStem: 3, Exceptions: []string{
		"benfeitor", "leitor", "editor", "pastor", "produtor", "promotor", "consultor",
	}},
	{Suffix: "ário", MinStem: 3, Exceptions: []string{
		"voluntário", "salário", "aniversário", "diário", "lionário", "armário",
	}},
	{Suffix: "atório", MinStem: 3},
	{Suffix: "ante", MinStem: 2, Exceptions: []string{
		"gigante", "elefante", "adiante", "possante", "instante", "restaurante",
	}},
	{Suffix: "ente", MinStem: 4, Exceptions: []string{
		"freqüente", "alimente", "acrescente", "permanente", "oriente", "aparente",
	}},
	{Suffix: "ência", MinStem: 3, Exceptions: []string{"ciência"}},
	{Suffix: "ância", MinStem: 3},
	{Suffix: "alismo", MinStem: 4},
	{Suffix: "ivismo", MinStem: 4},
	{Suffix: "ismo", MinStem: 3, Exceptions: []string{"cinismo"}},
	{Suffix: "ista", MinStem: 4},
	{Suffix: "ional", MinStem: 4},
	{Suffix: "ável", MinStem: 2, Exceptions: []string{"afável", "razoável", "potável", "vulnerável"}},
	{Suffix: "ível", MinStem: 3, Exceptions: []string{"possível"}},
	{Suffix: "ividade", MinStem: 5},
	{Suffix: "idade", MinStem: 4, Exceptions: []string{"autoridade", "comunidade"}},
	{Suffix: "ico", MinStem: 4, Exceptions: []string{"tico", "público", "explico"}},
	{Suffix: "al", MinStem: 4, Exceptions: []string{
		"afinal", "animal", "estatal", "bissexual", "desleal", "fiscal", "formal", "pessoal",
		"liberal", "postal", "virtual", "visual", "pontual", "sideral", "sucursal",
	}},
	{Suffix: "ura", MinStem: 4, Exceptions: []string{"imatura", "acupuntura", "costura"}},
}

var verbRules = []suffixRule{
	{Suffix: "aríamo", MinStem: 2},
	{Suffix: "ássemo", MinStem: 2},
	{Suffix: "eríamo", MinStem: 2},
	{Suffix: "êssemo", MinStem: 2},
	{Suffix: "iríamo", MinStem: 3},
	{Suffix: "íssemo", MinStem: 3},
	{Suffix: "áramo", MinStem: 2},
	{Suffix: "árei", MinStem: 2},
	{Suffix: "aremo", MinStem: 2},
	{Suffix: "ariam", MinStem: 2},
	{Suffix: "aríei", MinStem: 2},
	{Suffix: "ássei", MinStem: 2},
	{Suffix: "assem", MinStem: 2},
	{Suffix: "ávamo", MinStem: 2},
	{Suffix: "êramo", MinStem: 3},
	{Suffix: "eremo", MinStem: 3},
	{Suffix: "eriam", MinStem: 3},
	{Suffix: "eríei", MinStem: 3},
	{Suffix: "êssei", MinStem: 3},
	{Suffix: "essem", MinStem: 3},
	{Suffix: "íramo", MinStem: 3},
	{Suffix: "iremo", MinStem: 3},
	{Suffix: "iriam", MinStem: 3},
	{Suffix: "iríei", MinStem: 3},
	{Suffix: "íssei", MinStem: 3},
	{Suffix: "issem", MinStem: 3},
	{Suffix: "ando", MinStem: 2},
	{Suffix: "endo", MinStem: 3},
	{Suffix: "indo", MinStem: 3},
	{Suffix: "ondo", MinStem: 3},
	{Suffix: "aram", MinStem: 2},
	{Suffix: "arão", MinStem: 2},
	{Suffix: "arde", MinStem: 2},
	{Suffix: "arei", MinStem: 2},
	{Suffix: "arem", MinStem: 2},
	{Suffix: "aria", MinStem: 2},
	{Suffix: "armo", MinStem: 2},
	{Suffix: "asse", MinStem: 2},
	{Suffix: "aste", MinStem: 2},
	{Suffix: "avam", MinStem: 2, Exceptions: []string{"agravam"}},
	{Suffix: "ávei", MinStem: 2},
	{Suffix: "eram", MinStem: 3},
	{Suffix: "erão", MinStem: 3},
	{Suffix: "erde", MinStem: 3},
	{Suffix: "erei", MinStem: 3},
	{Suffix: "êrei", MinStem: 3},
	{Suffix: "erem", MinStem: 3},
	{Suffix: "eria", MinStem: 3},
	{Suffix: "ermo", MinStem: 3},
	{Suffix: "esse", MinStem: 3},
	{Suffix: "este", MinStem: 3, Exceptions: []string{"faroeste", "agreste"}},
	{Suffix: "íamo", MinStem: 3},
	{Suffix: "iram", MinStem: 3},
	{Suffix: "íram", MinStem: 3},
	{Suffix: "irão", MinStem: 2},
	{Suffix: "irde", MinStem: 2},
	{Suffix: "irei", MinStem: 3, Exceptions: []string{"admirei"}},
	{Suffix: "irem", MinStem: 3, Exceptions: []string{"adquirem"}},
	{Suffix: "iria", MinStem: 3},
	{Suffix: "irmo", MinStem: 3},
	{Suffix: "isse", MinStem: 3},
	{Suffix: "iste", MinStem: 4},
	{Suffix: "iava", MinStem: 4, Exceptions: []string{"ampliava"}},
	{Suffix: "amo", MinStem: 2},
	{Suffix: "iona", MinStem: 3},
	{Suffix: "ara", MinStem: 2, Exceptions: []string{"arara", "prepara"}},
	{Suffix: "ará", MinStem: 2, Exceptions: []string{"alvará"}},
	{Suffix: "are", MinStem: 2, Exceptions: []string{"prepare"}},
	{Suffix: "ava", MinStem: 2, Exceptions: []string{"agrava"}},
	{Suffix: "emo", MinStem: 2},
	{Suffix: "era", MinStem: 3, Exceptions: []string{"acelera", "espera"}},
	{Suffix: "erá", MinStem: 3},
	{Suffix: "ere", MinStem: 3, Exceptions: []string{"espere"}},
	{Suffix: "iam", MinStem: 3, Exceptions: []string{"enfiam", "ampliam", "elogiam", "ensaiam"}},
	{Suffix: "íei", MinStem: 3},
	{Suffix: "imo", MinStem: 3, Exceptions: []string{"reprimo", "intimo", "íntimo", "nimo", "queimo", "ximo"}},
	{Suffix: "ira", MinStem: 3, Exceptions: []string{"fronteira", "sátira"}},
	{Suffix: "ído", MinStem: 3},
	{Suffix: "irá", MinStem: 3},
	{Suffix: "tizar", MinStem: 4, Exceptions: []string{"alfabetizar"}},
	{Suffix: "izar", MinStem: 5, Exceptions: []string{"organizar"}},
	{Suffix: "itar", MinStem: 5, Exceptions: []string{"acreditar", "explicitar", "estreitar"}},
	{Suffix: "ire", MinStem: 3, Exceptions: []string{"adquire"}},
	{Suffix: "omo", MinStem: 3},
	{Suffix: "ai", MinStem: 2},
	{Suffix: "am", MinStem: 2},
	{Suffix: "ear", MinStem: 4, Exceptions: []string{"alardear", "nuclear"}},
	{Suffix: "ar", MinStem: 2, Exceptions: []string{"azar", "bazaar", "patamar"}},
	{Suffix: "uei", MinStem: 3},
	{Suffix: "uía", MinStem: 5, Replacement: "u"},
	{Suffix: "ei", MinStem: 3},
	{Suffix: "guem", MinStem: 3, Replacement: "g"},
	{Suffix: "em", MinStem: 2, Exceptions: []string{"alem", "virgem"}},
	{Suffix: "er", MinStem: 2, Exceptions: []string{"éter", "pier"}},
	{Suffix: "eu", MinStem: 3, Exceptions: []string{"chapeu"}},
	{Suffix: "ia", MinStem: 3, Exceptions: []string{
		"estória", "fatia", "acia", "praia", "elogia", "mania", "lábia", "aprecia",
		"polícia", "arredia", "cheia", "ásia",
	}},
	{Suffix: "ir", MinStem: 3, Exceptions: []string{"freir"}},
	{Suffix: "iu", MinStem: 3},
	{Suffix: "eou", MinStem: 5},
	{Suffix: "ou", MinStem: 3},
	{Suffix: "i", MinStem: 3},
}

var vowelRules = []suffixRule{
	{Suffix: "bil", MinStem: 2, Replacement: "vel"},
	{Suffix: "gue", MinStem: 2, Replacement: "g", Exceptions: []string{"gangue", "jegue"}},
	{Suffix: "á", MinStem: 3},
	{Suffix: "ê", MinStem: 3, Exceptions: []string{"bebê"}},
	{Suffix: "a", MinStem: 3, Exceptions: []string{"ásia"}},
	{Suffix: "e", MinStem: 3},
	{Suffix: "o", MinStem: 3, Exceptions: []string{"ão"}},
}
