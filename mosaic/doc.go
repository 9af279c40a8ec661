// Package mosaic converts images to Minitel semigraphic characters.
//
// A mosaic character covers 2x3 pixels drawn with two colours, which gives
// a resolution of 80x72 pixels for the whole screen. The encoder reduces
// every pixel to one of eight gray levels, keeps the two most frequent
// levels of each cell and emits one sequence per character row, using
// colour escapes only when colours change and the repeat code for runs of
// identical cells.
//
// Example:
//
//	img, err := mosaic.Load("picture.png")
//	if err != nil {
//		return err
//	}
//	fitted, err := mosaic.Fit(img, 40, 24)
//	if err != nil {
//		return err
//	}
//	pic, err := mosaic.Encoder{}.Encode(fitted)
//	if err != nil {
//		return err
//	}
//	err = pic.Draw(link, 1, 1)
package mosaic
