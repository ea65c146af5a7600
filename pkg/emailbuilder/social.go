package emailbuilder

// SocialPlatforms lists every supported platform in display order.
var SocialPlatforms = []SocialPlatform{
	SocialPlatformFacebook,
	SocialPlatformTwitter,
	SocialPlatformInstagram,
	SocialPlatformLinkedin,
	SocialPlatformYoutube,
}

// socialIconURLs maps each platform to its hosted icon asset.
var socialIconURLs = map[SocialPlatform]string{
	SocialPlatformFacebook:  "https://cdn-icons-png.flaticon.com/512/733/733547.png",
	SocialPlatformTwitter:   "https://cdn-icons-png.flaticon.com/512/733/733579.png",
	SocialPlatformInstagram: "https://cdn-icons-png.flaticon.com/512/2111/2111463.png",
	SocialPlatformLinkedin:  "https://cdn-icons-png.flaticon.com/512/174/174857.png",
	SocialPlatformYoutube:   "https://cdn-icons-png.flaticon.com/512/1384/1384060.png",
}

// SocialIconURL returns the icon asset URL for a platform, or an empty
// string for an unknown one.
func SocialIconURL(platform SocialPlatform) string {
	return socialIconURLs[platform]
}

// AvailablePlatforms returns the platforms not yet used by the given
// links, preserving catalog order. An empty result means the "add link"
// affordance becomes a no-op.
func AvailablePlatforms(links []SocialLink) []SocialPlatform {
	used := make(map[SocialPlatform]bool, len(links))
	for _, link := range links {
		used[link.Platform] = true
	}

	available := make([]SocialPlatform, 0, len(SocialPlatforms))
	for _, platform := range SocialPlatforms {
		if !used[platform] {
			available = append(available, platform)
		}
	}
	return available
}
