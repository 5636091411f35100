package config

// Default returns the production constants of the weaving floor.
func Default() Config {
	return Config{
		MachineOrder:   defaultMachineOrder(),
		CodeMapping:    defaultCodeMapping(),
		CodeSynonyms:   defaultCodeSynonyms(),
		Timezone:       "Asia/Bangkok",
		MaxLotSequence: 999,
		SheetName:      "รายงานรวม",
		OutputPrefix:   "รายงานสรุปผลผลิตรายเครื่อง",
		Layout: Layout{
			PrimaryLastRow:      83,
			SummaryTitleRow:     88,
			ExtraHeaderRow:      109,
			ExtraDataStartRow:   110,
			CodeSummaryStartRow: 150,
		},
	}
}

func defaultMachineOrder() []string {
	return []string{
		"CL1", "CL2", "CL3", "CL4", "CL5", "CL6", "CL7", "CL8", "CL9", "CL12", "CL13", "CL14", "CL15",
		"CL16", "CL17", "CL19", "CL25", "CL26", "CL27", "CL28", "CL29", "CL30", "CL31", "CL32", "CL33",
		"CL44", "CL45", "CL46", "CL47", "CL48", "CL49", "CL50", "CL51", "CL52", "CL53", "CL54", "CL55",
		"CL56", "CL57", "CL58", "CL59", "CL60", "CL61", "CL62", "CL63", "CL64", "CL65", "CL66", "CL67",
		"CL68", "CL69", "CL70", "CL71", "CL72", "CL73", "CL74", "CL75", "CL76", "CL77", "CL78", "CL79",
		"CL80", "CL81", "CL82", "CL83", "CL84", "CL85", "CL86", "CL87", "CL88", "CL89", "CL90", "CL91",
		"CL92", "CL93", "CL94", "CL95", "CL34", "CL35", "CL36",
	}
}

func defaultCodeMapping() map[string]string {
	return map[string]string{
		"1625800": "01", "1825800": "02", "1825800SM": "03", "1925800": "04", "1925800SM": "05",
		"1921720": "06", "2025700": "07", "2025800": "08", "2025800SM": "09", "2021750": "10",
		"2125650": "11", "2121670SM": "12", "2325650": "13", "1425800": "14", "2625650": "15",
		"262575051": "16", "1725800": "17", "2625800": "18", "2025850": "19", "2221940": "20",
		"SCL0223211125": "21", "SCL052325650": "22", "2321750": "23", "2421112512551": "24",
		"20251000": "25", "2625850SM": "26", "2325800SM": "27", "2825850": "28", "2125800SMN": "29",
		"19251000sm": "30", "1625800SM": "31", "2021720UV": "32", "23211125130": "33",
		"2321112512551": "34", "2321112514051": "35", "2025650": "36", "2125700": "37",
		"2125800": "38", "2021850UV": "39", "1R042325650": "40", "1621720SMFX": "41",
		"FCL022325650": "42", "23211125120smfx": "43",
	}
}

func defaultCodeSynonyms() map[string]string {
	return map[string]string{
		"23211125120SMFX":   "43",
		"1925100SM":         "30",
		"19251000SM":        "30",
		"2321112512551SMFX": "34",
	}
}
