package healthsdk

import "github.com/aussiebroadwan/healthmate/pkg/healthx"

// Validate applies the shared range rules. The API and the client both call
// it, so a reading rejected offline is rejected online too.
func (r BMIRequest) Validate() error {
	if err := healthx.CheckHeight(r.Height); err != nil {
		return err
	}
	if err := healthx.CheckWeight(r.Weight); err != nil {
		return err
	}
	if r.Age != 0 {
		if err := healthx.CheckAge(r.Age); err != nil {
			return err
		}
	}
	if r.Gender != "" {
		return healthx.CheckGender(r.Gender)
	}
	return nil
}

func (r BMRRequest) Validate() error {
	if err := healthx.CheckHeight(r.Height); err != nil {
		return err
	}
	if err := healthx.CheckWeight(r.Weight); err != nil {
		return err
	}
	if err := healthx.CheckAge(r.Age); err != nil {
		return err
	}
	if err := healthx.CheckGender(r.Gender); err != nil {
		return err
	}
	_, err := healthx.LookupActivity(r.Activity)
	return err
}

// Validate allows a zero resting rate, which means "not measured".
func (r HeartRateRequest) Validate() error {
	if err := healthx.CheckAge(r.Age); err != nil {
		return err
	}
	if r.RestingHeartRate != 0 {
		return healthx.CheckRestingHeartRate(r.RestingHeartRate)
	}
	return nil
}

func (r WaterLogRequest) Validate() error {
	return healthx.CheckWaterAmount(r.Amount)
}
