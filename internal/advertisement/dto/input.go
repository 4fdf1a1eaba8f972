package dto

import (
	"github.com/fekuna/omnipos-directory-service/internal/attachment"
	"github.com/fekuna/omnipos-directory-service/internal/model"
)

// AdInput is shared by create and update. Sub-objects are nil when the
// form did not carry them.
type AdInput struct {
	Category string
	Hero     *model.HeroAd
	Strap    *model.ImageAd
	Coupon   *model.ImageAd
	Slider   *model.SliderAd
	Logo     *model.ImageAd
	Files    attachment.Files
}

// ImageField is the upload field that carries the image of a category.
func ImageField(c model.AdCategory) string {
	if c == model.AdSlider {
		return "slider[logoImage]"
	}
	return string(c) + "[image]"
}
