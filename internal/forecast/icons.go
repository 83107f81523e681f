package forecast

// CWA Wx weather codes mapped to display glyphs.
var weatherIcons = map[string]string{
	"01": "☀️",  // 晴天
	"02": "🌤️", // 晴時多雲
	"03": "⛅",  // 多雲時晴
	"04": "🌥️", // 多雲
	"05": "☁️",  // 陰天
	"06": "☁️",  // 陰時多雲
	"07": "☁️",  // 多雲時陰
	"08": "🌧️", // 多雲短暫雨
	"09": "🌧️", // 多雲時陰短暫雨
	"10": "🌧️", // 陰時多雲短暫雨
	"11": "🌧️", // 陰短暫雨
	"12": "🌧️", // 多雲短暫陣雨
	"13": "🌧️", // 多雲時陰短暫陣雨
	"14": "🌧️", // 陰時多雲短暫陣雨
	"15": "🌧️", // 陰短暫陣雨
	"16": "⛈️", // 多雲雷陣雨
	"17": "⛈️", // 多雲時陰雷陣雨
	"18": "⛈️", // 陰時多雲雷陣雨
	"19": "⛈️", // 陰雷陣雨
	"20": "🌨️", // 多雲短暫雨或雪
	"21": "🌨️", // 多雲時陰短暫雨或雪
	"22": "🌨️", // 陰時多雲短暫雨或雪
	"23": "🌨️", // 陰短暫雨或雪
	"24": "❄️",  // 多雲有雪
	"25": "❄️",  // 多雲時陰有雪
	"26": "❄️",  // 陰時多雲有雪
	"27": "❄️",  // 陰有雪
	"28": "🌫️", // 有霧
	"29": "🌫️", // 多雲有霧
	"30": "🌫️", // 陰有霧
	"31": "🌙",  // 晴（夜）
	"32": "🌙",  // 晴時多雲（夜）
	"33": "☁️",  // 多雲時晴（夜）
	"34": "☁️",  // 多雲（夜）
}

const defaultIcon = "🌡️"

// IconFor returns the glyph for a CWA weather code.
func IconFor(code string) string {
	if icon, ok := weatherIcons[code]; ok {
		return icon
	}
	return defaultIcon
}
