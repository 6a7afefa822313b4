// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 DisreputableCode

package gbtrade

// Species name lookups. Gen 1 uses a non-sequential internal index
// (pokered constants); Gen 2 uses Pokedex order (1-251). Unknown or
// MissingNo indices map to "???".

// SpeciesName returns the display name for a species index under gen's
// numbering.
func SpeciesName(gen Generation, index uint8) string {
	if gen == Gen2 {
		if int(index) < len(gen2SpeciesNames) {
			return gen2SpeciesNames[index]
		}
		return "???"
	}
	if int(index) < len(gen1SpeciesNames) {
		return gen1SpeciesNames[index]
	}
	return "???"
}

var gen1SpeciesNames = []string{
	"???",        // 0x00
	"Rhydon",     // 0x01
	"Kangaskhan", // 0x02
	"Nidoran M",  // 0x03
	"Clefairy",   // 0x04
	"Spearow",    // 0x05
	"Voltorb",    // 0x06
	"Nidoking",   // 0x07
	"Slowbro",    // 0x08
	"Ivysaur",    // 0x09
	"Exeggutor",  // 0x0A
	"Lickitung",  // 0x0B
	"Exeggcute",  // 0x0C
	"Grimer",     // 0x0D
	"Gengar",     // 0x0E
	"Nidoran F",  // 0x0F
	"Nidoqueen",  // 0x10
	"Cubone",     // 0x11
	"Rhyhorn",    // 0x12
	"Lapras",     // 0x13
	"Arcanine",   // 0x14
	"Mew",        // 0x15
	"Gyarados",   // 0x16
	"Shellder",   // 0x17
	"Tentacool",  // 0x18
	"Gastly",     // 0x19
	"Scyther",    // 0x1A
	"Staryu",     // 0x1B
	"Blastoise",  // 0x1C
	"Pinsir",     // 0x1D
	"Tangela",    // 0x1E
	"???",        // 0x1F
	"???",        // 0x20
	"Growlithe",  // 0x21
	"Onix",       // 0x22
	"Fearow",     // 0x23
	"Pidgey",     // 0x24
	"Slowpoke",   // 0x25
	"Kadabra",    // 0x26
	"Graveler",   // 0x27
	"Chansey",    // 0x28
	"Machoke",    // 0x29
	"Mr. Mime",   // 0x2A
	"Hitmonlee",  // 0x2B
	"Hitmonchan", // 0x2C
	"Arbok",      // 0x2D
	"Parasect",   // 0x2E
	"Psyduck",    // 0x2F
	"Drowzee",    // 0x30
	"Golem",      // 0x31
	"???",        // 0x32
	"Magmar",     // 0x33
	"???",        // 0x34
	"Electabuzz", // 0x35
	"Magneton",   // 0x36
	"Koffing",    // 0x37
	"???",        // 0x38
	"Mankey",     // 0x39
	"Seel",       // 0x3A
	"Diglett",    // 0x3B
	"Tauros",     // 0x3C
	"???",        // 0x3D
	"???",        // 0x3E
	"???",        // 0x3F
	"Farfetch'd", // 0x40
	"Venonat",    // 0x41
	"Dragonite",  // 0x42
	"???",        // 0x43
	"???",        // 0x44
	"???",        // 0x45
	"Doduo",      // 0x46
	"Poliwag",    // 0x47
	"Jynx",       // 0x48
	"Moltres",    // 0x49
	"Articuno",   // 0x4A
	"Zapdos",     // 0x4B
	"Ditto",      // 0x4C
	"Meowth",     // 0x4D
	"Krabby",     // 0x4E
	"???",        // 0x4F
	"???",        // 0x50
	"???",        // 0x51
	"Vulpix",     // 0x52
	"Ninetales",  // 0x53
	"Pikachu",    // 0x54
	"Raichu",     // 0x55
	"???",        // 0x56
	"???",        // 0x57
	"Dratini",    // 0x58
	"Dragonair",  // 0x59
	"Kabuto",     // 0x5A
	"Kabutops",   // 0x5B
	"Horsea",     // 0x5C
	"Seadra",     // 0x5D
	"???",        // 0x5E
	"???",        // 0x5F
	"Sandshrew",  // 0x60
	"Sandslash",  // 0x61
	"Omanyte",    // 0x62
	"Omastar",    // 0x63
	"Jigglypuff", // 0x64
	"Wigglytuff", // 0x65
	"Eevee",      // 0x66
	"Flareon",    // 0x67
	"Jolteon",    // 0x68
	"Vaporeon",   // 0x69
	"Machop",     // 0x6A
	"Zubat",      // 0x6B
	"Ekans",      // 0x6C
	"Paras",      // 0x6D
	"Poliwhirl",  // 0x6E
	"Poliwrath",  // 0x6F
	"Weedle",     // 0x70
	"Kakuna",     // 0x71
	"Beedrill",   // 0x72
	"???",        // 0x73
	"Dodrio",     // 0x74
	"Primeape",   // 0x75
	"Dugtrio",    // 0x76
	"Venomoth",   // 0x77
	"Dewgong",    // 0x78
	"???",        // 0x79
	"???",        // 0x7A
	"Caterpie",   // 0x7B
	"Metapod",    // 0x7C
	"Butterfree", // 0x7D
	"Machamp",    // 0x7E
	"???",        // 0x7F
	"Golduck",    // 0x80
	"Hypno",      // 0x81
	"Golbat",     // 0x82
	"Mewtwo",     // 0x83
	"Snorlax",    // 0x84
	"Magikarp",   // 0x85
	"???",        // 0x86
	"???",        // 0x87
	"Muk",        // 0x88
	"???",        // 0x89
	"Kingler",    // 0x8A
	"Cloyster",   // 0x8B
	"???",        // 0x8C
	"Electrode",  // 0x8D
	"Clefable",   // 0x8E
	"Weezing",    // 0x8F
	"Persian",    // 0x90
	"Marowak",    // 0x91
	"???",        // 0x92
	"Haunter",    // 0x93
	"Abra",       // 0x94
	"Alakazam",   // 0x95
	"Pidgeotto",  // 0x96
	"Pidgeot",    // 0x97
	"Starmie",    // 0x98
	"Bulbasaur",  // 0x99
	"Venusaur",   // 0x9A
	"Tentacruel", // 0x9B
	"???",        // 0x9C
	"Goldeen",    // 0x9D
	"Seaking",    // 0x9E
	"???",        // 0x9F
	"???",        // 0xA0
	"???",        // 0xA1
	"???",        // 0xA2
	"Ponyta",     // 0xA3
	"Rapidash",   // 0xA4
	"Rattata",    // 0xA5
	"Raticate",   // 0xA6
	"Nidorino",   // 0xA7
	"Nidorina",   // 0xA8
	"Geodude",    // 0xA9
	"Porygon",    // 0xAA
	"Aerodactyl", // 0xAB
	"???",        // 0xAC
	"Magnemite",  // 0xAD
	"???",        // 0xAE
	"???",        // 0xAF
	"Charmander", // 0xB0
	"Squirtle",   // 0xB1
	"Charmeleon", // 0xB2
	"Wartortle",  // 0xB3
	"Charizard",  // 0xB4
	"???",        // 0xB5
	"???",        // 0xB6
	"???",        // 0xB7
	"???",        // 0xB8
	"Oddish",     // 0xB9
	"Gloom",      // 0xBA
	"Vileplume",  // 0xBB
	"Bellsprout", // 0xBC
	"Weepinbell", // 0xBD
	"Victreebel", // 0xBE
}

var gen2SpeciesNames = []string{
	"???", "Bulbasaur", "Ivysaur", "Venusaur", "Charmander", "Charmeleon",
	"Charizard", "Squirtle", "Wartortle", "Blastoise", "Caterpie",
	"Metapod", "Butterfree", "Weedle", "Kakuna", "Beedrill", "Pidgey",
	"Pidgeotto", "Pidgeot", "Rattata", "Raticate", "Spearow", "Fearow",
	"Ekans", "Arbok", "Pikachu", "Raichu", "Sandshrew", "Sandslash",
	"Nidoran F", "Nidorina", "Nidoqueen", "Nidoran M", "Nidorino",
	"Nidoking", "Clefairy", "Clefable", "Vulpix", "Ninetales",
	"Jigglypuff", "Wigglytuff", "Zubat", "Golbat", "Oddish", "Gloom",
	"Vileplume", "Paras", "Parasect", "Venonat", "Venomoth", "Diglett",
	"Dugtrio", "Meowth", "Persian", "Psyduck", "Golduck", "Mankey",
	"Primeape", "Growlithe", "Arcanine", "Poliwag", "Poliwhirl",
	"Poliwrath", "Abra", "Kadabra", "Alakazam", "Machop", "Machoke",
	"Machamp", "Bellsprout", "Weepinbell", "Victreebel", "Tentacool",
	"Tentacruel", "Geodude", "Graveler", "Golem", "Ponyta", "Rapidash",
	"Slowpoke", "Slowbro", "Magnemite", "Magneton", "Farfetch'd", "Doduo",
	"Dodrio", "Seel", "Dewgong", "Grimer", "Muk", "Shellder", "Cloyster",
	"Gastly", "Haunter", "Gengar", "Onix", "Drowzee", "Hypno", "Krabby",
	"Kingler", "Voltorb", "Electrode", "Exeggcute", "Exeggutor", "Cubone",
	"Marowak", "Hitmonlee", "Hitmonchan", "Lickitung", "Koffing",
	"Weezing", "Rhyhorn", "Rhydon", "Chansey", "Tangela", "Kangaskhan",
	"Horsea", "Seadra", "Goldeen", "Seaking", "Staryu", "Starmie",
	"Mr. Mime", "Scyther", "Jynx", "Electabuzz", "Magmar", "Pinsir",
	"Tauros", "Magikarp", "Gyarados", "Lapras", "Ditto", "Eevee",
	"Vaporeon", "Jolteon", "Flareon", "Porygon", "Omanyte", "Omastar",
	"Kabuto", "Kabutops", "Aerodactyl", "Snorlax", "Articuno", "Zapdos",
	"Moltres", "Dratini", "Dragonair", "Dragonite", "Mewtwo", "Mew",
	"Chikorita", "Bayleef", "Meganium", "Cyndaquil", "Quilava",
	"Typhlosion", "Totodile", "Croconaw", "Feraligatr", "Sentret",
	"Furret", "Hoothoot", "Noctowl", "Ledyba", "Ledian", "Spinarak",
	"Ariados", "Crobat", "Chinchou", "Lanturn", "Pichu", "Cleffa",
	"Igglybuff", "Togepi", "Togetic", "Natu", "Xatu", "Mareep", "Flaaffy",
	"Ampharos", "Bellossom", "Marill", "Azumarill", "Sudowoodo",
	"Politoed", "Hoppip", "Skiploom", "Jumpluff", "Aipom", "Sunkern",
	"Sunflora", "Yanma", "Wooper", "Quagsire", "Espeon", "Umbreon",
	"Murkrow", "Slowking", "Misdreavus", "Unown", "Wobbuffet",
	"Girafarig", "Pineco", "Forretress", "Dunsparce", "Gligar", "Steelix",
	"Snubbull", "Granbull", "Qwilfish", "Scizor", "Shuckle", "Heracross",
	"Sneasel", "Teddiursa", "Ursaring", "Slugma", "Magcargo", "Swinub",
	"Piloswine", "Corsola", "Remoraid", "Octillery", "Delibird",
	"Mantine", "Skarmory", "Houndour", "Houndoom", "Kingdra", "Phanpy",
	"Donphan", "Porygon2", "Stantler", "Smeargle", "Tyrogue", "Hitmontop",
	"Smoochum", "Elekid", "Magby", "Miltank", "Blissey", "Raikou",
	"Entei", "Suicune", "Larvitar", "Pupitar", "Tyranitar", "Lugia",
	"Ho-Oh", "Celebi",
}
