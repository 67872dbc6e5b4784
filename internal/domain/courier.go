package domain

import "fmt"

type CourierType string

const (
	CourierWalking    CourierType = "WALKING"
	CourierCycle      CourierType = "CYCLE"
	CourierBicycle    CourierType = "BICYCLE"
	CourierMotorcycle CourierType = "MOTORCYCLE"
	CourierCar        CourierType = "CAR"
)

var courierSpeeds = map[CourierType]float64{
	CourierWalking:    5,
	CourierCycle:      15,
	CourierBicycle:    15,
	CourierMotorcycle: 30,
	CourierCar:        25,
}

// SpeedKmh returns the delivery speed used for ETA estimation. An
// unrecognized courier type is a configuration error, never a silent
// default.
func (c CourierType) SpeedKmh() (float64, error) {
	speed, ok := courierSpeeds[c]
	if !ok {
		return 0, fmt.Errorf("unknown courier type %q", c)
	}
	return speed, nil
}
