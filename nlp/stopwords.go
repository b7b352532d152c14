package nlp

// portugueseStopWords is the standard Portuguese stop-word list distributed with the NLTK corpora.
var portugueseStopWords = map[string]bool{
	"a": true, "à": true, "ao": true, "aos": true, "aquela": true, "aquelas": true,
	"aquele": true, "aqueles": true, "aquilo": true, "as": true, "às": true, "até": true,
	"com": true, "como": true, "da": true, "das": true, "de": true, "dela": true,
	"delas": true, "dele": true, "deles": true, "depois": true, "do": true, "dos": true,
	"e": true, "é": true, "ela": true, "elas": true, "ele": true, "eles": true,
	"em": true, "entre": true, "era": true, "eram": true, "éramos": true, "essa": true,
	"essas": true, "esse": true, "esses": true, "esta": true, "está": true, "estamos": true,
	"estão": true, "estar": true, "estas": true, "estava": true, "estavam": true, "estávamos": true,
	"este": true, "esteja": true, "estejam": true, "estejamos": true, "estes": true, "esteve": true,
	"estive": true, "estivemos": true, "estiver": true, "estivera": true, "estiveram": true, "estivéramos": true,
	"estiverem": true, "estivermos": true, "estivesse": true, "estivessem": true, "estivéssemos": true, "estou": true,
	"eu": true, "foi": true, "fomos": true, "for": true, "fora": true, "foram": true,
	"fôramos": true, "forem": true, "formos": true, "fosse": true, "fossem": true, "fôssemos": true,
	"fui": true, "há": true, "haja": true, "hajam": true, "hajamos": true, "hão": true,
	"havemos": true, "haver": true, "hei": true, "houve": true, "houvemos": true, "houver": true,
	"houvera": true, "houverá": true, "houveram": true, "houvéramos": true, "houverão": true, "houverei": true,
	"houverem": true, "houveremos": true, "houveria": true, "houveriam": true, "houveríamos": true, "houvermos": true,
	"houvesse": true, "houvessem": true, "houvéssemos": true, "isso": true, "isto": true, "já": true,
	"lhe": true, "lhes": true, "mais": true, "mas": true, "me": true, "mesmo": true,
	"meu": true, "meus": true, "minha": true, "minhas": true, "muito": true, "na": true,
	"não": true, "nas": true, "nem": true, "no": true, "nos": true, "nós": true,
	"nossa": true, "nossas": true, "nosso": true, "nossos": true, "num": true, "numa": true,
	"o": true, "os": true, "ou": true, "para": true, "pela": true, "pelas": true,
	"pelo": true, "pelos": true, "por": true, "qual": true, "quando": true, "que": true,
	"quem": true, "são": true, "se": true, "seja": true, "sejam": true, "sejamos": true,
	"sem": true, "ser": true, "será": true, "serão": true, "serei": true, "seremos": true,
	"seria": true, "seriam": true, "seríamos": true, "seu": true, "seus": true, "só": true,
	"somos": true, "sou": true, "sua": true, "suas": true, "também": true, "te": true,
	"tem": true, "tém": true, "temos": true, "tenha": true, "tenham": true, "tenhamos": true,
	"tenho": true, "terá": true, "terão": true, "terei": true, "teremos": true, "teria": true,
	"teriam": true, "teríamos": true, "teu": true, "teus": true, "teve": true, "tinha": true,
	"tinham": true, "tínhamos": true, "tive": true, "tivemos": true, "tiver": true, "tivera": true,
	"tiveram": true, "tivéramos": true, "tiverem": true, "tivermos": true, "tivesse": true, "tivessem": true,
	"tivéssemos": true, "tu": true, "tua": true, "tuas": true, "um": true, "uma": true,
	"você": true, "vocês": true, "vos": true,
}

// IsStopWord reports whether a lowercased token is a Portuguese stop-word.
func IsStopWord(token string) bool {
	return portugueseStopWords[token]
}
