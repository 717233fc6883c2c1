package process

// journalAbbreviations maps full journal names, exactly as upstream
// metadata spells them, to AAS-style macros.
var journalAbbreviations = map[string]string{
	`American Institute of Physics Conference Proceedings`:              `\aipconf`,
	`Annual Review of Astronomy & Astrophysics`:                         `\araa`,
	`Applied Optics`:                                                    `\ao`,
	`Astronomical Society of the Pacific Conference Series`:             `\aspconf`,
	`Astronomy \& Astrophysics Reviews`:                                 `\aapr`,
	`Astronomy \& Astrophysics`:                                         `\aap`,
	`Astronomy \& Astrophysics, Supplement`:                             `\aaps`,
	`Astrophysics \& Space Science Library Conference Series`:           `\asslconf`,
	`Astrophysics \& Space Science`:                                     `\apss`,
	`Astrophysics Letters`:                                              `\aplett`,
	`Astrophysics Space Physics Research`:                               `\apspr`,
	`Bulletin of the American Astronomical Society`:                     `\baas`,
	`Bulletin of the Astronomical Institutes of the Netherlands`:        `\bain`,
	`Fundamental Cosmic Physics`:                                        `\fcp`,
	`IAU Circulars`:                                                     `\iauc`,
	`Journal of Machine Learning Research`:                              `\jmlr`,
	`Journal of Open Source Software`:                                   `\joss`,
	`Journal of the Royal Astronomical Society of Canada`:               `\jrasc`,
	`Machine Learning: Science and Technology`:                          `\mlst`,
	`Memoirs of the Royal Astronomical Society`:                         `\memras`,
	`Meteoritics \& Planetary Science`:                                  `\maps`,
	`Monthly Notices of the Royal Astronomical Society`:                 `\mnras`,
	`Nature`:                                                            `\nat`,
	`Physical Review A`:                                                 `\pra`,
	`Physical Review B`:                                                 `\prb`,
	`Physical Review C`:                                                 `\prc`,
	`Physical Review D`:                                                 `\prd`,
	`Physical Review E`:                                                 `\pre`,
	`Physical Review Letters`:                                           `\prl`,
	`Planetary Space Science`:                                           `\planss`,
	`Proceedings of the International Society for Optical Engineering`:  `\procspie`,
	`Publications of the Astronomical Society of Japan`:                 `\pasj`,
	`Publications of the Astronomical Society of the Pacific`:           `\pasp`,
	`Quarterly Journal of the Royal Astronomical Society`:               `\qjras`,
	`Reviews of Modern Physics`:                                         `\rmp`,
	`Science`:                                                           `\sci`,
	`Sky & Telescope`:                                                   `\skytel`,
	`Solar Physics`:                                                     `\solphys`,
	`Space Science Reviews`:                                             `\ssr`,
	`The Astronomical Journal`:                                          `\aj`,
	`The Astrophysical Journal`:                                         `\apj`,
	`The Astrophysical Journal, Letters`:                                `\apjl`,
	`The Astrophysical Journal, Supplement`:                             `\apjs`,
}

// JournalAbbreviation returns the macro for name, if known.
func JournalAbbreviation(name string) (string, bool) {
	abbr, ok := journalAbbreviations[name]
	return abbr, ok
}

var months = map[string]string{
	"jan": "1", "january": "1",
	"feb": "2", "february": "2",
	"mar": "3", "march": "3",
	"apr": "4", "april": "4",
	"may": "5",
	"jun": "6", "june": "6",
	"jul": "7", "july": "7",
	"aug": "8", "august": "8",
	"sep": "9", "september": "9",
	"oct": "10", "october": "10",
	"nov": "11", "november": "11",
	"dec": "12", "december": "12",
}
