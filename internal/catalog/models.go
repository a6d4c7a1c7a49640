// Package catalog provides SQLite-backed lookup of genre display metadata:
// localized name, emoji, description and scoring keywords.
package catalog

// Genre is one catalog row.
type Genre struct {
	Key         string
	Name        string
	Emoji       string
	Description string
	Keywords    []string
}

// Info is the display metadata resolved for a (possibly combined) genre key.
type Info struct {
	Name        string
	Emoji       string
	Description string
}

type seedRow struct {
	key, name, emoji, description, keywords string
}

// seed is the built-in catalog. Alias keys (scifi, sports, ...) carry no
// keywords so they never win scoring on their own.
var seed = []seedRow{
	{"action", "Aksiyon", "💥", "Adrenalin dolu aksiyon ve heyecan", "aksiyon,patlama,silah,kovalamaca,dövüş,action,explosion,fight,chase"},
	{"comedy", "Komedi", "😂", "Kahkaha dolu eğlenceli anlar", "komik,komedi,gülmek,şaka,eğlenceli,funny,comedy,joke,hilarious"},
	{"drama", "Drama", "🎭", "Derin duygusal hikayeler", "aile,hayat,dram,gözyaşı,kayıp,drama,life,loss,struggle"},
	{"horror", "Korku", "👻", "Korku ve gerilim dolu anlar", "korku,hayalet,lanet,cin,kan,horror,ghost,haunted,demon"},
	{"romance", "Romantik", "💕", "Aşk ve romantizm hikayeleri", "aşk,sevgili,romantik,evlilik,kalp,love,romance,wedding"},
	{"sci-fi", "Bilim Kurgu", "🚀", "Bilim kurgu ve gelecek vizyonu", "galaksi,galakside,uzay,robot,gelecek,gezegen,yıldız,galaxy,space,future,planet,alien"},
	{"scifi", "Bilim Kurgu", "🚀", "Bilim kurgu ve gelecek vizyonu", ""},
	{"thriller", "Gerilim", "🔪", "Gerilim ve gizem dolu", "gerilim,takip,tehdit,kaçırma,thriller,hostage,threat"},
	{"adventure", "Macera", "🗺️", "Macera ve keşif dolu", "macera,yolculuk,hazine,keşif,ada,adventure,journey,treasure,quest"},
	{"animation", "Animasyon", "🎨", "Animasyon dünyasının büyüsü", "animasyon,çizgi,oyuncak,animation,cartoon"},
	{"crime", "Suç", "🔍", "Suç ve dedektiflik hikayeleri", "suç,polis,dedektif,cinayet,mafya,soygun,crime,police,detective,murder,heist"},
	{"documentary", "Belgesel", "📹", "Gerçek hayattan hikayeler", "belgesel,gerçek,doğa,documentary,nature"},
	{"fantasy", "Fantazi", "🧙", "Fantastik dünyalar ve büyü", "büyü,büyücü,ejderha,krallık,şövalye,efsanevi,magic,wizard,dragon,kingdom"},
	{"mystery", "Gizem", "🕵️", "Gizem ve sırlarla dolu", "gizem,gizemli,sır,kayıp,ipucu,mystery,secret,clue"},
	{"war", "Savaş", "⚔️", "Savaş ve kahramanlık hikayeleri", "savaş,savaşın,asker,cephe,ordu,war,soldier,army"},
	{"western", "Western", "🤠", "Vahşi Batı maceraları", "kovboy,şerif,vahşi,western,cowboy,sheriff"},
	{"musical", "Müzikal", "🎵", "Müzik ve dans şöleni", "müzik,şarkı,dans,sahne,music,song,dance"},
	{"family", "Aile", "👨‍👩‍👧‍👦", "Aile dostu içerikler", "çocuk,aile,kardeş,family,kids"},
	{"history", "Tarih", "📜", "Tarihi olaylar ve dönemler", "tarih,imparatorluk,padişah,history,empire"},
	{"sport", "Spor", "⚽", "Spor ve rekabet hikayeleri", "futbol,maç,şampiyon,takım,sport,match,champion"},
	{"sports", "Spor", "⚽", "Spor ve rekabet hikayeleri", ""},
	{"biography", "Biyografi", "📖", "Gerçek hayat hikayeleri", "biyografi,yaşamı,biography"},
	{"bio", "Biyografi", "📖", "Gerçek hayat hikayeleri", ""},
	{"romantic", "Romantik", "💕", "Aşk ve romantizm hikayeleri", ""},
	{"love", "Romantik", "💕", "Aşk ve romantizm hikayeleri", ""},
	{"suspense", "Gerilim", "🔪", "Gerilim ve gizem dolu", ""},
	{"noir", "Kara Film", "🌑", "Karanlık ve gizemli hikayeler", "noir"},
	{"adult", "Yetişkin", "🔞", "Yetişkin içerikler", ""},
	{"short", "Kısa Film", "🎬", "Kısa filmler", ""},
	{"news", "Haber", "📰", "Haber ve güncel olaylar", ""},
	{"reality", "Gerçeklik", "📺", "Gerçeklik programları", ""},
	{"tv", "TV", "📺", "TV programları", ""},
	{"talk", "Talk Show", "🎤", "Talk show programları", ""},
	{"game", "Oyun", "🎮", "Oyun programları", ""},
	{"show", "Gösteri", "🎭", "Gösteri programları", ""},
}
