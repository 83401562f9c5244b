package registry

// defaultServers 是内置的后缀到WHOIS服务器映射
// 空值表示该后缀没有公开的43端口WHOIS服务
var defaultServers = map[string]string{
	".ac":      "whois.nic.ac",
	".ae":      "whois.aeda.net.ae",
	".ai":      "whois.nic.ai",
	".app":     "whois.nic.google",
	".ar":      "whois.nic.ar",
	".at":      "whois.nic.at",
	".au":      "whois.auda.org.au",
	".be":      "whois.dns.be",
	".biz":     "whois.biz",
	".br":      "whois.registro.br",
	".ca":      "whois.cira.ca",
	".cc":      "ccwhois.verisign-grs.com",
	".ch":      "whois.nic.ch",
	".cl":      "whois.nic.cl",
	".cn":      "whois.cnnic.cn",
	".co":      "whois.nic.co",
	".co.jp":   "whois.jprs.jp",
	".co.uk":   "whois.nic.uk",
	".com":     "whois.verisign-grs.com",
	".cz":      "whois.nic.cz",
	".de":      "whois.denic.de",
	".dev":     "whois.nic.google",
	".dk":      "whois.dk-hostmaster.dk",
	".edu":     "whois.educause.edu",
	".es":      "whois.nic.es",
	".eu":      "whois.eu",
	".fi":      "whois.fi",
	".fr":      "whois.nic.fr",
	".gov":     "whois.dotgov.gov",
	".gr":      "",
	".hk":      "whois.hkirc.hk",
	".ie":      "whois.weare.ie",
	".in":      "whois.registry.in",
	".info":    "whois.afilias.net",
	".int":     "whois.iana.org",
	".io":      "whois.nic.io",
	".it":      "whois.nic.it",
	".jp":      "whois.jprs.jp",
	".kr":      "whois.kr",
	".me":      "whois.nic.me",
	".mil":     "",
	".mobi":    "whois.dotmobiregistry.net",
	".mx":      "whois.mx",
	".net":     "whois.verisign-grs.com",
	".nl":      "whois.domain-registry.nl",
	".no":      "whois.norid.no",
	".nz":      "whois.srs.net.nz",
	".org":     "whois.pir.org",
	".org.uk":  "whois.nic.uk",
	".pl":      "whois.dns.pl",
	".pt":      "whois.dns.pt",
	".ru":      "whois.tcinet.ru",
	".se":      "whois.iis.se",
	".sg":      "whois.sgnic.sg",
	".sh":      "whois.nic.sh",
	".so":      "whois.nic.so",
	".tk":      "",
	".tv":      "tvwhois.verisign-grs.com",
	".tw":      "whois.twnic.net.tw",
	".ua":      "whois.ua",
	".uk":      "whois.nic.uk",
	".us":      "whois.nic.us",
	".vn":      "",
	".xyz":     "whois.nic.xyz",
	".za":      "whois.registry.net.za",
}
